package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCreateProductionTrackingCommandIsNotConstructed = errors.New(
	"CreateProductionTrackingCommand must be created via NewCreateProductionTrackingCommand constructor",
)

// CreateProductionTrackingCommand opens the production record of a confirmed
// order. Only the manufacturer does this.
type CreateProductionTrackingCommand struct { //nolint:recvcheck //using for validation
	trackingID     kernel.UUID
	orderID        kernel.UUID
	manufacturerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateProductionTrackingCommand(
	trackingID, orderID, manufacturerID kernel.UUID,
) (CreateProductionTrackingCommand, error) {
	if err := errors.Join(trackingID.Validate(), orderID.Validate(), manufacturerID.Validate()); err != nil {
		return CreateProductionTrackingCommand{}, err
	}
	return CreateProductionTrackingCommand{
		trackingID:     trackingID,
		orderID:        orderID,
		manufacturerID: manufacturerID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CreateProductionTrackingCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductionTrackingCommandIsNotConstructed)
}

func (c CreateProductionTrackingCommand) TrackingID() kernel.UUID     { return c.trackingID }
func (c CreateProductionTrackingCommand) OrderID() kernel.UUID        { return c.orderID }
func (c CreateProductionTrackingCommand) ManufacturerID() kernel.UUID { return c.manufacturerID }
