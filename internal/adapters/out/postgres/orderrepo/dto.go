// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting orders and samples.
// Both kinds share the table and are told apart by the kind column.
type OrderDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Kind           string          `gorm:"size:16;not null"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ManufacturerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity       int             `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency       string          `gorm:"size:3;not null"`
	ProductionDays int             `gorm:"not null"`
	Deadline       *time.Time
	Specifications string
	Notes          string
	DepositPercent decimal.Decimal `gorm:"type:numeric(5,2);not null"`

	CounterOffer CounterOfferDTO `gorm:"embedded;embeddedPrefix:customer_quoted_"`

	EstimatedProductionDate *time.Time
	ActualProductionStart   *time.Time
	ActualProductionEnd     *time.Time

	Status         string `gorm:"size:40;not null;index"`
	PreviousStatus string `gorm:"size:40"`
	Version        int    `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CounterOfferDTO holds the customer's latest proposal; all columns are null
// when there is none.
type CounterOfferDTO struct {
	Price  decimal.NullDecimal `gorm:"type:numeric(18,2)"`
	Days   *int
	Note   string
	Type   string `gorm:"size:20"`
	SentAt *time.Time
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	t := o.Terms()
	dto := OrderDTO{
		ID:                      o.ID().Bytes(),
		Kind:                    o.Kind().String(),
		CustomerID:              o.CustomerID().Bytes(),
		ManufacturerID:          o.ManufacturerID().Bytes(),
		Quantity:                t.Quantity,
		UnitPrice:               t.UnitPrice,
		Currency:                t.Currency.String(),
		ProductionDays:          t.ProductionDays,
		Deadline:                t.Deadline,
		Specifications:          t.Specifications,
		Notes:                   t.Notes,
		DepositPercent:          o.DepositPercent(),
		EstimatedProductionDate: o.EstimatedProductionDate(),
		ActualProductionStart:   o.ActualProductionStart(),
		ActualProductionEnd:     o.ActualProductionEnd(),
		Status:                  o.Status().String(),
		Version:                 o.Version(),
		CreatedAt:               o.CreatedAt(),
		UpdatedAt:               o.UpdatedAt(),
	}
	if o.PreviousStatus() != lifecycle.StatusUnknown {
		dto.PreviousStatus = o.PreviousStatus().String()
	}
	if c := o.CounterOffer(); c != nil {
		days, sentAt := c.Days, c.SentAt
		dto.CounterOffer = CounterOfferDTO{
			Price:  decimal.NewNullDecimal(c.Price),
			Days:   &days,
			Note:   c.Note,
			Type:   string(c.Type),
			SentAt: &sentAt,
		}
	}
	return dto
}

// toDomain converts a database DTO to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromGoogle(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	manufacturerID, err := kernel.UUIDFromGoogle(dto.ManufacturerID)
	if err != nil {
		return nil, err
	}
	kind, err := lifecycle.ParseEntityKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	status, err := lifecycle.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	previous := lifecycle.StatusUnknown
	if dto.PreviousStatus != "" {
		if previous, err = lifecycle.ParseStatus(dto.PreviousStatus); err != nil {
			return nil, err
		}
	}

	var counter *order.CounterOffer
	if dto.CounterOffer.Price.Valid {
		counter = &order.CounterOffer{
			Price: dto.CounterOffer.Price.Decimal,
			Note:  dto.CounterOffer.Note,
			Type:  order.QuoteType(dto.CounterOffer.Type),
		}
		if dto.CounterOffer.Days != nil {
			counter.Days = *dto.CounterOffer.Days
		}
		if dto.CounterOffer.SentAt != nil {
			counter.SentAt = *dto.CounterOffer.SentAt
		}
	}

	return order.RestoreOrder(order.Snapshot{
		ID:             id,
		Kind:           kind,
		CustomerID:     customerID,
		ManufacturerID: manufacturerID,
		Terms: order.Terms{
			Quantity:       dto.Quantity,
			UnitPrice:      dto.UnitPrice,
			Currency:       kernel.Currency(dto.Currency),
			ProductionDays: dto.ProductionDays,
			Deadline:       dto.Deadline,
			Specifications: dto.Specifications,
			Notes:          dto.Notes,
		},
		DepositPercent:          dto.DepositPercent,
		CounterOffer:            counter,
		EstimatedProductionDate: dto.EstimatedProductionDate,
		ActualProductionStart:   dto.ActualProductionStart,
		ActualProductionEnd:     dto.ActualProductionEnd,
		Status:                  status,
		PreviousStatus:          previous,
		Version:                 dto.Version,
		CreatedAt:               dto.CreatedAt,
		UpdatedAt:               dto.UpdatedAt,
	})
}
