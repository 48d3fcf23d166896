package commands

import (
	"errors"
	"strings"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrShipmentHasNoLines = errors.New("shipment must have at least one line")
)

// LineRequest asks for quantity units of a product sku at a unit price in the order currency.
type LineRequest struct {
	SkuGUID   kernel.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// ShipmentRequest groups the lines fulfilled together.
type ShipmentRequest struct {
	Kind  order.Kind
	Lines []LineRequest
}

func (r ShipmentRequest) validate() error {
	if err := r.Kind.Validate(); err != nil {
		return err
	}
	if len(r.Lines) == 0 {
		return ErrShipmentHasNoLines
	}
	for _, line := range r.Lines {
		if err := line.SkuGUID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("sku guid", err)
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, "unbounded")
		}
		if line.UnitPrice.IsNegative() {
			return errs.NewValueIsInvalidError("unit price")
		}
	}
	return nil
}

// CreateOrderCommand places an order in a store. Currency and locale default to the store's.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "SNAPITUP", "customer-42", "", "",
//	    []ShipmentRequest{{Kind: order.Physical, Lines: lines}})
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.UUID
	storeCode   string
	customerRef string
	currency    string
	locale      string
	shipments   []ShipmentRequest

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderNumber kernel.UUID,
	storeCode, customerRef, currency, locale string,
	shipments []ShipmentRequest,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		currency:  strings.TrimSpace(currency),
		locale:    strings.TrimSpace(locale),
		shipments: shipments,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setStoreCode(storeCode),
		cmd.setCustomerRef(customerRef),
		cmd.validateShipments(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderNumber() kernel.UUID     { return c.orderNumber }
func (c CreateOrderCommand) StoreCode() string            { return c.storeCode }
func (c CreateOrderCommand) CustomerRef() string          { return c.customerRef }
func (c CreateOrderCommand) Currency() string             { return c.currency }
func (c CreateOrderCommand) Locale() string               { return c.locale }
func (c CreateOrderCommand) Shipments() []ShipmentRequest { return c.shipments }

func (c *CreateOrderCommand) setOrderNumber(orderNumber kernel.UUID) error {
	if err := orderNumber.Validate(); err != nil {
		return err
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setStoreCode(storeCode string) error {
	if strings.TrimSpace(storeCode) == "" {
		return errs.NewValueIsRequiredError("store code")
	}
	c.storeCode = storeCode
	return nil
}

func (c *CreateOrderCommand) setCustomerRef(customerRef string) error {
	if strings.TrimSpace(customerRef) == "" {
		return errs.NewValueIsRequiredError("customer reference")
	}
	c.customerRef = customerRef
	return nil
}

func (c *CreateOrderCommand) validateShipments() error {
	errList := make([]error, 0, len(c.shipments))
	for _, s := range c.shipments {
		errList = append(errList, s.validate())
	}
	return errors.Join(errList...)
}
