package postgres

import (
	"marketplace/internal/adapters/out/postgres/changelogrepo"
	"marketplace/internal/adapters/out/postgres/negotiationrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/paymentrepo"
	"marketplace/internal/adapters/out/postgres/trackingrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the lifecycle engine.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&negotiationrepo.NegotiationDTO{},
		&changelogrepo.ChangeLogDTO{},
		&trackingrepo.TrackingDTO{},
		&trackingrepo.StageUpdateDTO{},
		&paymentrepo.PaymentDTO{},
	}
}

// Migrate creates or updates the schema of Models. Indexes come from the DTO
// tags, the partial unique index on pending negotiations included
// (negotiationrepo.PendingIndex on NegotiationDTO.OrderID).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
