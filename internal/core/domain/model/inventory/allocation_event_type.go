package inventory

import (
	"fmt"

	"commerce/internal/pkg/errs"
)

// AllocationEventType is an order lifecycle event that changes inventory.
type AllocationEventType int

const (
	UnknownAllocationEvent AllocationEventType = iota
	OrderPlaced
	OrderAdjustmentAddSku
	OrderAdjustmentChangeQty
	OrderCancellation
	OrderAdjustmentRemoveSku
	ShipmentCompleted
)

func getAllocationEventStrings() map[AllocationEventType]string {
	return map[AllocationEventType]string{
		UnknownAllocationEvent:   "UNKNOWN",
		OrderPlaced:              "ORDER_PLACED",
		OrderAdjustmentAddSku:    "ORDER_ADJUSTMENT_ADDSKU",
		OrderAdjustmentChangeQty: "ORDER_ADJUSTMENT_CHANGEQTY",
		OrderCancellation:        "ORDER_CANCELLATION",
		OrderAdjustmentRemoveSku: "ORDER_ADJUSTMENT_REMOVESKU",
		ShipmentCompleted:        "SHIPMENT_COMPLETED",
	}
}

func (e AllocationEventType) String() string {
	if s, ok := getAllocationEventStrings()[e]; ok {
		return s
	}
	return "UNKNOWN"
}

// Translate maps the event to the inventory command it implies. deltaQty only matters
// for OrderAdjustmentChangeQty: a non-negative delta allocates, a negative one deallocates.
func (e AllocationEventType) Translate(deltaQty int) (EventType, error) {
	switch e {
	case OrderPlaced, OrderAdjustmentAddSku:
		return StockAllocate, nil
	case OrderAdjustmentChangeQty:
		if deltaQty >= 0 {
			return StockAllocate, nil
		}
		return StockDeallocate, nil
	case OrderCancellation, OrderAdjustmentRemoveSku:
		return StockDeallocate, nil
	case ShipmentCompleted:
		return StockRelease, nil
	case UnknownAllocationEvent:
	}
	return UnknownEventType, errs.NewValueIsInvalidErrorWithCause(
		"allocation event",
		fmt.Errorf("%d is not a valid allocation event", e),
	)
}
