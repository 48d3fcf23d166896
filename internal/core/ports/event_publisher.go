package ports

import (
	"context"
	"time"
)

// Lifecycle event types. The suffix is the payload version.
const (
	EventOrderPlaced      = "order.placed.v1"
	EventOrderHeld        = "order.held.v1"
	EventOrderReleased    = "order.released.v1"
	EventOrderCancelled   = "order.cancelled.v1"
	EventOrderFailed      = "order.failed.v1"
	EventShipmentReleased = "shipment.released.v1"
	EventShipmentShipped  = "shipment.shipped.v1"
	EventReturnCreated    = "return.created.v1"
	EventReturnReceived   = "return.received.v1"
)

// LifecycleEvent is a fire-and-forget notification about an order.
type LifecycleEvent struct {
	Type        string    `json:"type"`
	OrderNumber string    `json:"orderNumber"`
	Reference   string    `json:"reference,omitempty"` // shipment number or RMA code
	Status      string    `json:"status"`
	StoreCode   string    `json:"storeCode"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// EventPublisher delivers lifecycle events; there is no acknowledgment contract beyond the
// returned error.
type EventPublisher interface {
	Publish(ctx context.Context, event LifecycleEvent) error
}
