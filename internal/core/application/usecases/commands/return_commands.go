package commands

import (
	"errors"
	"strings"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/orderreturn"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateReturnCommandIsNotConstructed = errors.New(
		"CreateReturnCommand must be created via NewCreateReturnCommand constructor",
	)
	ErrReceiveReturnCommandIsNotConstructed = errors.New(
		"ReceiveReturnCommand must be created via NewReceiveReturnCommand constructor",
	)
	ErrFinishReturnCommandIsNotConstructed = errors.New(
		"FinishReturnCommand must be created via NewCompleteReturnCommand or NewCancelReturnCommand",
	)
	ErrReturnHasNoLines = errors.New("return must have at least one line")
)

// ReturnLineRequest asks to return quantity units of an order line.
type ReturnLineRequest struct {
	OrderSkuGUID kernel.UUID
	Quantity     int
	Reason       string
}

// ReturnAdjustments are the money amounts of a return in the order currency.
type ReturnAdjustments struct {
	ShippingCost      decimal.Decimal
	ShipmentDiscount  decimal.Decimal
	LessRestockAmount decimal.Decimal
}

// CreateReturnCommand opens a return or exchange against a shipped shipment. An exchange may
// name the replacement order, which then waits for the exchange to complete.
type CreateReturnCommand struct { //nolint:recvcheck //using for validation
	rmaCode             string
	returnType          orderreturn.Type
	orderNumber         kernel.UUID
	shipmentNumber      string
	physicalReturn      bool
	createdBy           string
	lines               []ReturnLineRequest
	adjustments         ReturnAdjustments
	exchangeOrderNumber *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateReturnCommand(
	rmaCode string,
	returnType orderreturn.Type,
	orderNumber kernel.UUID,
	shipmentNumber string,
	physicalReturn bool,
	createdBy string,
	lines []ReturnLineRequest,
	adjustments ReturnAdjustments,
	exchangeOrderNumber *kernel.UUID,
) (CreateReturnCommand, error) {
	errList := []error{
		orderNumber.Validate(),
		returnType.Validate(),
		requireShipmentNumber(shipmentNumber),
	}
	if strings.TrimSpace(rmaCode) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("rma code"))
	}
	if len(lines) == 0 {
		errList = append(errList, ErrReturnHasNoLines)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsOutOfRangeError("return quantity", line.Quantity, 1, "ordered"))
		}
	}
	if exchangeOrderNumber != nil {
		if returnType != orderreturn.Exchange {
			errList = append(errList, errs.NewValueIsInvalidError("exchange order number"))
		} else {
			errList = append(errList, exchangeOrderNumber.Validate())
		}
	}
	if err := errors.Join(errList...); err != nil {
		return CreateReturnCommand{}, err
	}

	return CreateReturnCommand{
		rmaCode:             rmaCode,
		returnType:          returnType,
		orderNumber:         orderNumber,
		shipmentNumber:      shipmentNumber,
		physicalReturn:      physicalReturn,
		createdBy:           createdBy,
		lines:               lines,
		adjustments:         adjustments,
		exchangeOrderNumber: exchangeOrderNumber,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

func (c CreateReturnCommand) Validate() error {
	return c.guard.Validate(ErrCreateReturnCommandIsNotConstructed)
}

func (c CreateReturnCommand) RMACode() string                   { return c.rmaCode }
func (c CreateReturnCommand) Type() orderreturn.Type            { return c.returnType }
func (c CreateReturnCommand) OrderNumber() kernel.UUID          { return c.orderNumber }
func (c CreateReturnCommand) ShipmentNumber() string            { return c.shipmentNumber }
func (c CreateReturnCommand) PhysicalReturn() bool              { return c.physicalReturn }
func (c CreateReturnCommand) CreatedBy() string                 { return c.createdBy }
func (c CreateReturnCommand) Lines() []ReturnLineRequest        { return c.lines }
func (c CreateReturnCommand) Adjustments() ReturnAdjustments    { return c.adjustments }
func (c CreateReturnCommand) ExchangeOrderNumber() *kernel.UUID { return c.exchangeOrderNumber }

// ReceiveLineRequest records quantity units of a return line arriving at the warehouse.
type ReceiveLineRequest struct {
	ReturnSkuGUID kernel.UUID
	Quantity      int
}

// ReceiveReturnCommand records returned stock for a physical return.
type ReceiveReturnCommand struct { //nolint:recvcheck //using for validation
	rmaCode    string
	receivedBy string
	lines      []ReceiveLineRequest

	guard guard.ConstructorGuard
}

func NewReceiveReturnCommand(rmaCode, receivedBy string, lines []ReceiveLineRequest) (ReceiveReturnCommand, error) {
	errList := make([]error, 0, len(lines)+2)
	if strings.TrimSpace(rmaCode) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("rma code"))
	}
	if len(lines) == 0 {
		errList = append(errList, ErrReturnHasNoLines)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsOutOfRangeError("received quantity", line.Quantity, 1, "returned"))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return ReceiveReturnCommand{}, err
	}

	return ReceiveReturnCommand{
		rmaCode:    rmaCode,
		receivedBy: receivedBy,
		lines:      lines,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReceiveReturnCommand) Validate() error {
	return c.guard.Validate(ErrReceiveReturnCommandIsNotConstructed)
}

func (c ReceiveReturnCommand) RMACode() string             { return c.rmaCode }
func (c ReceiveReturnCommand) ReceivedBy() string          { return c.receivedBy }
func (c ReceiveReturnCommand) Lines() []ReceiveLineRequest { return c.lines }

// FinishReturnCommand completes or cancels a return.
type FinishReturnCommand struct { //nolint:recvcheck //using for validation
	rmaCode string
	cancel  bool

	guard guard.ConstructorGuard
}

func NewCompleteReturnCommand(rmaCode string) (FinishReturnCommand, error) {
	return newFinishReturnCommand(rmaCode, false)
}

func NewCancelReturnCommand(rmaCode string) (FinishReturnCommand, error) {
	return newFinishReturnCommand(rmaCode, true)
}

func newFinishReturnCommand(rmaCode string, cancel bool) (FinishReturnCommand, error) {
	if strings.TrimSpace(rmaCode) == "" {
		return FinishReturnCommand{}, errs.NewValueIsRequiredError("rma code")
	}
	return FinishReturnCommand{rmaCode: rmaCode, cancel: cancel, guard: guard.NewConstructorGuard()}, nil
}

func (c FinishReturnCommand) Validate() error {
	return c.guard.Validate(ErrFinishReturnCommandIsNotConstructed)
}

func (c FinishReturnCommand) RMACode() string { return c.rmaCode }
func (c FinishReturnCommand) IsCancel() bool  { return c.cancel }
