package inventory

import (
	"errors"
	"fmt"
	"strings"

	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

var ErrStockIsNotConstructed = errors.New("Stock must be created via NewStock constructor")

// Stock is the inventory record of one sku in one warehouse.
type Stock struct {
	skuCode     string
	warehouseID int64
	onHand      int
	allocated   int
	reserved    int

	guard guard.ConstructorGuard
}

func NewStock(skuCode string, warehouseID int64, onHand, allocated, reserved int) (*Stock, error) {
	s := &Stock{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		s.setSkuCode(skuCode),
		s.setWarehouseID(warehouseID),
		nonNegative("quantity on hand", onHand),
		nonNegative("allocated quantity", allocated),
		nonNegative("reserved quantity", reserved),
	); err != nil {
		return nil, err
	}

	s.onHand, s.allocated, s.reserved = onHand, allocated, reserved
	return s, nil
}

func (s *Stock) Validate() error {
	if s == nil {
		return ErrStockIsNotConstructed
	}
	return s.guard.Validate(ErrStockIsNotConstructed)
}

func (s *Stock) SkuCode() string        { return s.skuCode }
func (s *Stock) WarehouseID() int64     { return s.warehouseID }
func (s *Stock) QuantityOnHand() int    { return s.onHand }
func (s *Stock) AllocatedQuantity() int { return s.allocated }
func (s *Stock) ReservedQuantity() int  { return s.reserved }

// AvailableQuantityInStock is on-hand minus reserved minus allocated, floored at zero.
func (s *Stock) AvailableQuantityInStock() int {
	return max(s.onHand-s.reserved-s.allocated, 0)
}

// Apply executes an inventory command. Allocation beyond available stock is allowed
// only when allowOversell is set, which callers use for pre/back-order skus.
func (s *Stock) Apply(cmd Command, allowOversell bool) error {
	if cmd.SkuCode != s.skuCode {
		return errs.NewValueIsInvalidErrorWithCause(
			"sku code",
			fmt.Errorf("command for %s applied to stock of %s", cmd.SkuCode, s.skuCode),
		)
	}
	if err := nonNegative("quantity", cmd.Quantity); err != nil {
		return err
	}

	switch cmd.Type {
	case StockAllocate:
		if !allowOversell && cmd.Quantity > s.AvailableQuantityInStock() {
			return errs.NewValueIsOutOfRangeError("quantity", cmd.Quantity, 0, s.AvailableQuantityInStock())
		}
		s.allocated += cmd.Quantity
	case StockDeallocate:
		s.allocated = max(s.allocated-cmd.Quantity, 0)
	case StockRelease:
		s.onHand = max(s.onHand-cmd.Quantity, 0)
		s.allocated = max(s.allocated-cmd.Quantity, 0)
	case StockReceived, StockAdjustment:
		s.onHand += cmd.Quantity
	case UnknownEventType:
		return errs.NewValueIsInvalidErrorWithCause("inventory event", fmt.Errorf("%s", cmd.Type))
	}
	return nil
}

func (s *Stock) setSkuCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("sku code")
	}
	s.skuCode = code
	return nil
}

func (s *Stock) setWarehouseID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("warehouse", fmt.Errorf("%d is not greater than 0", id))
	}
	s.warehouseID = id
	return nil
}

func nonNegative(name string, v int) error {
	if v < 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%d is negative", v))
	}
	return nil
}
