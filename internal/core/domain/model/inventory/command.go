package inventory

import (
	"fmt"

	"commerce/internal/pkg/errs"
)

// EventType is the inventory-side operation applied to a stock record.
type EventType int

const (
	UnknownEventType EventType = iota
	StockAllocate
	StockDeallocate
	StockRelease
	StockReceived
	StockAdjustment
)

func (t EventType) String() string {
	switch t {
	case StockAllocate:
		return "STOCK_ALLOCATE"
	case StockDeallocate:
		return "STOCK_DEALLOCATE"
	case StockRelease:
		return "STOCK_RELEASE"
	case StockReceived:
		return "STOCK_RECEIVED"
	case StockAdjustment:
		return "STOCK_ADJUSTMENT"
	case UnknownEventType:
	}
	return "UNKNOWN"
}

// Command is a quantity change to apply to one sku in one warehouse.
type Command struct {
	Type     EventType
	SkuCode  string
	Quantity int
}

// NewCommand translates an allocation event for a sku into a Command.
func NewCommand(event AllocationEventType, skuCode string, deltaQty int) (Command, error) {
	eventType, err := event.Translate(deltaQty)
	if err != nil {
		return Command{}, err
	}
	if skuCode == "" {
		return Command{}, errs.NewValueIsRequiredError("sku code")
	}
	return Command{Type: eventType, SkuCode: skuCode, Quantity: abs(deltaQty)}, nil
}

func (c Command) String() string {
	return fmt.Sprintf("%s %s x%d", c.Type, c.SkuCode, c.Quantity)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
