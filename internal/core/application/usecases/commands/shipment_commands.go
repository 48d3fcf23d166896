package commands

import (
	"errors"
	"strings"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

var (
	ErrReleaseShipmentCommandIsNotConstructed = errors.New(
		"ReleaseShipmentCommand must be created via NewReleaseShipmentCommand constructor",
	)
	ErrShipShipmentCommandIsNotConstructed = errors.New(
		"ShipShipmentCommand must be created via NewShipShipmentCommand constructor",
	)
	ErrRecalculateShipmentTaxesCommandIsNotConstructed = errors.New(
		"RecalculateShipmentTaxesCommand must be created via NewRecalculateShipmentTaxesCommand constructor",
	)
)

// ReleaseShipmentCommand releases an inventory-assigned shipment to the warehouse for picking.
type ReleaseShipmentCommand struct { //nolint:recvcheck //using for validation
	orderNumber    kernel.UUID
	shipmentNumber string

	guard guard.ConstructorGuard
}

func NewReleaseShipmentCommand(orderNumber kernel.UUID, shipmentNumber string) (ReleaseShipmentCommand, error) {
	if err := errors.Join(orderNumber.Validate(), requireShipmentNumber(shipmentNumber)); err != nil {
		return ReleaseShipmentCommand{}, err
	}
	return ReleaseShipmentCommand{
		orderNumber:    orderNumber,
		shipmentNumber: shipmentNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseShipmentCommand) Validate() error {
	return c.guard.Validate(ErrReleaseShipmentCommandIsNotConstructed)
}

func (c ReleaseShipmentCommand) OrderNumber() kernel.UUID { return c.orderNumber }
func (c ReleaseShipmentCommand) ShipmentNumber() string   { return c.shipmentNumber }

// ShipShipmentCommand marks a released shipment shipped.
type ShipShipmentCommand struct { //nolint:recvcheck //using for validation
	orderNumber    kernel.UUID
	shipmentNumber string
	trackingCode   string

	guard guard.ConstructorGuard
}

func NewShipShipmentCommand(orderNumber kernel.UUID, shipmentNumber, trackingCode string) (ShipShipmentCommand, error) {
	if err := errors.Join(orderNumber.Validate(), requireShipmentNumber(shipmentNumber)); err != nil {
		return ShipShipmentCommand{}, err
	}
	return ShipShipmentCommand{
		orderNumber:    orderNumber,
		shipmentNumber: shipmentNumber,
		trackingCode:   strings.TrimSpace(trackingCode),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ShipShipmentCommand) Validate() error {
	return c.guard.Validate(ErrShipShipmentCommandIsNotConstructed)
}

func (c ShipShipmentCommand) OrderNumber() kernel.UUID { return c.orderNumber }
func (c ShipShipmentCommand) ShipmentNumber() string   { return c.shipmentNumber }
func (c ShipShipmentCommand) TrackingCode() string     { return c.trackingCode }

// RecalculateShipmentTaxesCommand stores the outcome of a tax calculation on a shipment.
type RecalculateShipmentTaxesCommand struct { //nolint:recvcheck //using for validation
	orderNumber    kernel.UUID
	shipmentNumber string
	result         order.TaxResult

	guard guard.ConstructorGuard
}

func NewRecalculateShipmentTaxesCommand(
	orderNumber kernel.UUID,
	shipmentNumber string,
	result order.TaxResult,
) (RecalculateShipmentTaxesCommand, error) {
	if err := errors.Join(
		orderNumber.Validate(),
		requireShipmentNumber(shipmentNumber),
		result.Validate(),
	); err != nil {
		return RecalculateShipmentTaxesCommand{}, err
	}
	return RecalculateShipmentTaxesCommand{
		orderNumber:    orderNumber,
		shipmentNumber: shipmentNumber,
		result:         result,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c RecalculateShipmentTaxesCommand) Validate() error {
	return c.guard.Validate(ErrRecalculateShipmentTaxesCommandIsNotConstructed)
}

func (c RecalculateShipmentTaxesCommand) OrderNumber() kernel.UUID { return c.orderNumber }
func (c RecalculateShipmentTaxesCommand) ShipmentNumber() string   { return c.shipmentNumber }
func (c RecalculateShipmentTaxesCommand) Result() order.TaxResult  { return c.result }

func requireShipmentNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("shipment number")
	}
	return nil
}
