package order

import (
	"fmt"

	"commerce/internal/pkg/errs"
)

// ShipmentStatus is the fulfilment state of a single shipment.
//
//	AwaitingInventory <──allocation──> InventoryAssigned ──> Released ──> Shipped
//	        └──────────────┴──────────────────┴──> Cancelled
//
// OnHold is never stored: a shipment reports OnHold while its order is on hold and returns to its
// stored status on release. FailedOrder is set when the owning order fails.
type ShipmentStatus int

const (
	UnknownShipmentStatus ShipmentStatus = iota
	AwaitingInventory
	InventoryAssigned
	Released
	ShipmentOnHold
	ShipmentCancelled
	Shipped
	FailedOrder
)

func getShipmentStatusStrings() map[ShipmentStatus]string {
	return map[ShipmentStatus]string{
		UnknownShipmentStatus: "UNKNOWN",
		AwaitingInventory:     "AWAITING_INVENTORY",
		InventoryAssigned:     "INVENTORY_ASSIGNED",
		Released:              "RELEASED",
		ShipmentOnHold:        "ONHOLD",
		ShipmentCancelled:     "CANCELLED",
		Shipped:               "SHIPPED",
		FailedOrder:           "FAILED_ORDER",
	}
}

// ShipmentStatuses lists every valid shipment status.
func ShipmentStatuses() []ShipmentStatus {
	return []ShipmentStatus{
		AwaitingInventory, InventoryAssigned, Released, ShipmentOnHold, ShipmentCancelled, Shipped, FailedOrder,
	}
}

func ParseShipmentStatus(s string) (ShipmentStatus, error) {
	for status, name := range getShipmentStatusStrings() {
		if status != UnknownShipmentStatus && name == s {
			return status, nil
		}
	}
	return UnknownShipmentStatus, errs.NewValueIsInvalidErrorWithCause(
		"shipment status",
		fmt.Errorf("%q is not a valid shipment status", s),
	)
}

func (s ShipmentStatus) Validate() error {
	if s <= UnknownShipmentStatus || s > FailedOrder {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment status",
			fmt.Errorf("%d is not a valid shipment status", s),
		)
	}
	return nil
}

func (s ShipmentStatus) String() string {
	if str, ok := getShipmentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsCancellable is true for AwaitingInventory, InventoryAssigned, Released and OnHold.
func (s ShipmentStatus) IsCancellable() bool {
	switch s {
	case AwaitingInventory, InventoryAssigned, Released, ShipmentOnHold:
		return true
	default:
		return false
	}
}

// EffectiveShipmentStatus combines a stored shipment status with the status of its order.
func EffectiveShipmentStatus(stored ShipmentStatus, orderStatus Status) ShipmentStatus {
	if stored == ShipmentCancelled {
		return stored
	}
	switch orderStatus {
	case OnHold:
		if !stored.IsTerminal() {
			return ShipmentOnHold
		}
	case Cancelled:
		return ShipmentCancelled
	default:
	}
	return stored
}

func (s ShipmentStatus) IsReadyForFundsCapture() bool {
	return s == Released
}

func (s ShipmentStatus) IsTerminal() bool {
	return s == Shipped || s == ShipmentCancelled || s == FailedOrder
}

// isTaxRecalculationRequired is false once the shipment has left the warehouse or was cancelled.
func (s ShipmentStatus) isTaxRecalculationRequired() bool {
	return s != Released && s != Shipped && s != ShipmentCancelled
}

// canTransitionTo encodes the legal stored-status edges.
func (s ShipmentStatus) canTransitionTo(to ShipmentStatus) bool {
	switch to {
	case AwaitingInventory:
		return s == InventoryAssigned
	case InventoryAssigned:
		return s == AwaitingInventory
	case Released:
		return s == InventoryAssigned
	case Shipped:
		return s == Released
	case ShipmentCancelled:
		return s.IsCancellable()
	case FailedOrder:
		return !s.IsTerminal()
	case UnknownShipmentStatus, ShipmentOnHold:
	}
	return false
}
