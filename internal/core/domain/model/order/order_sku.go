package order

import (
	"errors"
	"fmt"
	"strings"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

var ErrOrderSkuIsNotConstructed = errors.New("OrderSku must be created via NewOrderSku constructor")

// OrderSku is a line item. It refers to its product sku by GUID only; the catalog entry
// is resolved through a lookup when needed.
type OrderSku struct {
	guid              kernel.UUID
	skuGUID           kernel.UUID
	skuCode           string
	quantity          int
	allocatedQuantity int
	stockQuantity     int
	// pre/back-ordered units waiting for stock; not part of allocatedQuantity
	preOrBackOrderQuantity int
	unitPrice              kernel.Money
	tax                    kernel.Money

	guard guard.ConstructorGuard
}

func NewOrderSku(
	guid, skuGUID kernel.UUID,
	skuCode string,
	quantity int,
	unitPrice kernel.Money,
) (*OrderSku, error) {
	sku := &OrderSku{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		sku.setGUID(guid),
		sku.setSkuGUID(skuGUID),
		sku.setSkuCode(skuCode),
		sku.setQuantity(quantity),
		sku.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	sku.tax = unitPrice.Currency().Zero()
	return sku, nil
}

// RestoreOrderSku rebuilds a persisted line item.
func RestoreOrderSku(
	guid, skuGUID kernel.UUID,
	skuCode string,
	quantity, allocatedQuantity, stockQuantity, preOrBackOrderQuantity int,
	unitPrice, tax kernel.Money,
) (*OrderSku, error) {
	sku, err := NewOrderSku(guid, skuGUID, skuCode, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	if err = sku.setAllocation(allocatedQuantity, stockQuantity, preOrBackOrderQuantity); err != nil {
		return nil, err
	}
	if err = sku.setTax(tax); err != nil {
		return nil, err
	}
	return sku, nil
}

func (s *OrderSku) Validate() error {
	if s == nil {
		return ErrOrderSkuIsNotConstructed
	}
	return s.guard.Validate(ErrOrderSkuIsNotConstructed)
}

func (s *OrderSku) GUID() kernel.UUID      { return s.guid }
func (s *OrderSku) SkuGUID() kernel.UUID   { return s.skuGUID }
func (s *OrderSku) SkuCode() string        { return s.skuCode }
func (s *OrderSku) Quantity() int          { return s.quantity }
func (s *OrderSku) AllocatedQuantity() int { return s.allocatedQuantity }

// StockQuantity is the part of the allocation taken from warehouse stock; the rest was
// pre/back-ordered or needs no stock.
func (s *OrderSku) StockQuantity() int      { return s.stockQuantity }
func (s *OrderSku) UnitPrice() kernel.Money { return s.unitPrice }

// PreOrBackOrderQuantity is the part of the line pre/back-ordered against the product sku limit.
// It moves to the allocated quantity once stock arrives.
func (s *OrderSku) PreOrBackOrderQuantity() int { return s.preOrBackOrderQuantity }
func (s *OrderSku) Tax() kernel.Money           { return s.tax }

// UnallocatedQuantity is what still has to be allocated for the line to be fulfilled,
// pre/back-ordered units included.
func (s *OrderSku) UnallocatedQuantity() int {
	return max(s.quantity-s.allocatedQuantity, 0)
}

func (s *OrderSku) IsAllocated() bool {
	return s.allocatedQuantity >= s.quantity
}

// Subtotal is unit price times quantity.
func (s *OrderSku) Subtotal() kernel.Money {
	return s.unitPrice.Times(s.quantity)
}

func (s *OrderSku) setGUID(guid kernel.UUID) error {
	if err := guid.Validate(); err != nil {
		return err
	}
	s.guid = guid
	return nil
}

func (s *OrderSku) setSkuGUID(guid kernel.UUID) error {
	if err := guid.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("product sku guid", err)
	}
	s.skuGUID = guid
	return nil
}

func (s *OrderSku) setSkuCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("sku code")
	}
	s.skuCode = code
	return nil
}

func (s *OrderSku) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	s.quantity = quantity
	return nil
}

func (s *OrderSku) setAllocation(quantity, fromStock, preOrBackOrdered int) error {
	if quantity < 0 || quantity > s.quantity {
		return errs.NewValueIsOutOfRangeError("allocated quantity", quantity, 0, s.quantity)
	}
	if fromStock < 0 || fromStock > quantity {
		return errs.NewValueIsOutOfRangeError("stock quantity", fromStock, 0, quantity)
	}
	if preOrBackOrdered < 0 || preOrBackOrdered > s.quantity-quantity {
		return errs.NewValueIsOutOfRangeError("pre/back-order quantity", preOrBackOrdered, 0, s.quantity-quantity)
	}
	s.allocatedQuantity = quantity
	s.stockQuantity = fromStock
	s.preOrBackOrderQuantity = preOrBackOrdered
	return nil
}

func (s *OrderSku) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", price))
	}
	s.unitPrice = price
	return nil
}

func (s *OrderSku) setTax(tax kernel.Money) error {
	if !tax.Currency().IsEqual(s.unitPrice.Currency()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"tax",
			fmt.Errorf("%s does not match %s", tax.Currency(), s.unitPrice.Currency()),
		)
	}
	s.tax = tax
	return nil
}
