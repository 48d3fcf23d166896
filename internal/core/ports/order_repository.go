// Package ports defines the contracts between the order management core and infrastructure:
// repositories, the unit of work, the store cache and the lifecycle event publisher.
package ports

import (
	"context"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their shipments, line items,
// payments, tax values and history events.
type OrderRepository interface {
	// Add inserts a new order and marks it persisted. A second order with the same number
	// fails with errs.DuplicateOrderError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the whole aggregate. The stored version must match the aggregate version,
	// otherwise errs.VersionIsInvalidError is returned.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order by its GUID (the order number).
	Get(ctx context.Context, guid kernel.UUID) (*order.Order, error)

	// GetAwaitingInventory returns up to limit in-progress orders with a uid greater than afterUID
	// that still have shipments awaiting inventory, in uid order. Pass the last uid of a page to
	// read the next one.
	GetAwaitingInventory(ctx context.Context, afterUID int64, limit int) ([]*order.Order, error)
}
