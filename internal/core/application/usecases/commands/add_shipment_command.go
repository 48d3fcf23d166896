package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var ErrAddShipmentCommandIsNotConstructed = errors.New(
	"AddShipmentCommand must be created via NewAddShipmentCommand constructor",
)

// AddShipmentCommand adds a shipment to an existing order.
type AddShipmentCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.UUID
	shipment    ShipmentRequest

	guard guard.ConstructorGuard
}

func NewAddShipmentCommand(orderNumber kernel.UUID, shipment ShipmentRequest) (AddShipmentCommand, error) {
	if err := errors.Join(orderNumber.Validate(), shipment.validate()); err != nil {
		return AddShipmentCommand{}, err
	}
	return AddShipmentCommand{
		orderNumber: orderNumber,
		shipment:    shipment,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AddShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAddShipmentCommandIsNotConstructed)
}

func (c AddShipmentCommand) OrderNumber() kernel.UUID  { return c.orderNumber }
func (c AddShipmentCommand) Shipment() ShipmentRequest { return c.shipment }
