package order

import (
	"fmt"

	"commerce/internal/pkg/errs"
)

// Status is the order-level lifecycle state.
//
//	Created ──release──> InProgress ──(shipments)──> PartiallyShipped ──> Completed
//	   │  ╲                  │
//	   │   hold ──> OnHold <─┘ hold
//	   │              │ release (status re-derived from shipments)
//	   └─> AwaitingExchange ──release──> InProgress
//
// Cancelled and Failed are reachable from every cancellable state. Completed, Cancelled and
// Failed are terminal. While InProgress, PartiallyShipped or Completed the status is derived
// from shipment statuses; OnHold, Cancelled, Failed and AwaitingExchange are explicit and
// dominate the derived value.
type Status int

const (
	Unknown Status = iota
	Created
	InProgress
	PartiallyShipped
	Completed
	Cancelled
	OnHold
	AwaitingExchange
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Created:          "CREATED",
		InProgress:       "IN_PROGRESS",
		PartiallyShipped: "PARTIALLY_SHIPPED",
		Completed:        "COMPLETED",
		Cancelled:        "CANCELLED",
		OnHold:           "ONHOLD",
		AwaitingExchange: "AWAITING_EXCHANGE",
		Failed:           "FAILED",
	}
}

// ParseStatus maps a status name (as produced by String) back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsCancellable is true for Created, InProgress, OnHold and AwaitingExchange.
func (s Status) IsCancellable() bool {
	switch s {
	case Created, InProgress, OnHold, AwaitingExchange:
		return true
	default:
		return false
	}
}

// IsHoldable is true for Created and InProgress. AwaitingExchange is cancellable but not holdable.
func (s Status) IsHoldable() bool {
	return s == Created || s == InProgress
}

// IsReleasable is true for Created, OnHold and AwaitingExchange.
func (s Status) IsReleasable() bool {
	switch s {
	case Created, OnHold, AwaitingExchange:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Failed
}

// isDerived reports whether the status follows the shipments.
func (s Status) isDerived() bool {
	return s == InProgress || s == PartiallyShipped || s == Completed
}

func (s Status) transitionError(action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%s is not a valid status to %s", s, action),
	)
}
