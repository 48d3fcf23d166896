package orderreturn

import (
	"fmt"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

// ReturnSku is one returned line. It points at the shipped OrderSku by GUID.
type ReturnSku struct {
	guid               kernel.UUID
	orderSkuGUID       kernel.UUID
	skuCode            string
	orderedQuantity    int
	quantity           int
	receivedQuantity   int
	returnableQuantity int
	unitPrice          kernel.Money
	tax                kernel.Money
	reason             string
}

// ReturnSkuState is the persisted form of a ReturnSku.
type ReturnSkuState struct {
	GUID             kernel.UUID
	OrderSkuGUID     kernel.UUID
	SkuCode          string
	OrderedQuantity  int
	Quantity         int
	ReceivedQuantity int
	UnitPrice        kernel.Money
	Tax              kernel.Money
	Reason           string
}

func restoreReturnSku(state ReturnSkuState) (*ReturnSku, error) {
	if err := state.GUID.Validate(); err != nil {
		return nil, err
	}
	if err := state.OrderSkuGUID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("order sku guid", err)
	}
	if state.Quantity < 0 || state.Quantity > state.OrderedQuantity {
		return nil, errs.NewValueIsOutOfRangeError("return quantity", state.Quantity, 0, state.OrderedQuantity)
	}
	if state.ReceivedQuantity < 0 || state.ReceivedQuantity > state.Quantity {
		return nil, errs.NewValueIsOutOfRangeError("received quantity", state.ReceivedQuantity, 0, state.Quantity)
	}
	return &ReturnSku{
		guid:               state.GUID,
		orderSkuGUID:       state.OrderSkuGUID,
		skuCode:            state.SkuCode,
		orderedQuantity:    state.OrderedQuantity,
		quantity:           state.Quantity,
		receivedQuantity:   state.ReceivedQuantity,
		returnableQuantity: state.OrderedQuantity,
		unitPrice:          state.UnitPrice,
		tax:                state.Tax,
		reason:             state.Reason,
	}, nil
}

func (s *ReturnSku) GUID() kernel.UUID         { return s.guid }
func (s *ReturnSku) OrderSkuGUID() kernel.UUID { return s.orderSkuGUID }
func (s *ReturnSku) SkuCode() string           { return s.skuCode }
func (s *ReturnSku) OrderedQuantity() int      { return s.orderedQuantity }
func (s *ReturnSku) Quantity() int             { return s.quantity }
func (s *ReturnSku) ReceivedQuantity() int     { return s.receivedQuantity }
func (s *ReturnSku) UnitPrice() kernel.Money   { return s.unitPrice }
func (s *ReturnSku) Tax() kernel.Money         { return s.tax }
func (s *ReturnSku) Reason() string            { return s.reason }

// ReturnableQuantity is what is left to return after other open returns of the same shipment.
// It is only meaningful after Return.UpdateReturnableQuantity.
func (s *ReturnSku) ReturnableQuantity() int { return s.returnableQuantity }

func (s *ReturnSku) IsFullyReceived() bool {
	return s.receivedQuantity >= s.quantity
}

// Amount is unit price times returned quantity.
func (s *ReturnSku) Amount() kernel.Money {
	return s.unitPrice.Times(s.quantity)
}

func (s *ReturnSku) setQuantity(quantity int) error {
	if quantity < 0 || quantity > s.orderedQuantity {
		return errs.NewValueIsOutOfRangeError("return quantity", quantity, 0, s.orderedQuantity)
	}
	if quantity < s.receivedQuantity {
		return errs.NewValueIsInvalidErrorWithCause(
			"return quantity",
			fmt.Errorf("%d is less than the %d already received", quantity, s.receivedQuantity),
		)
	}
	s.quantity = quantity
	return nil
}
