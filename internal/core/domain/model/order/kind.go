package order

import (
	"fmt"

	"commerce/internal/pkg/errs"
)

// Kind tags the shipment variant. Kind-specific rules are switches over this tag.
type Kind int

const (
	UnknownKind Kind = iota
	Physical
	Electronic
	Service
)

func (k Kind) String() string {
	switch k {
	case Physical:
		return "PHYSICAL"
	case Electronic:
		return "ELECTRONIC"
	case Service:
		return "SERVICE"
	case UnknownKind:
	}
	return "UNKNOWN"
}

func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{Physical, Electronic, Service} {
		if k.String() == s {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("shipment kind", fmt.Errorf("%q is not a valid kind", s))
}

func (k Kind) Validate() error {
	if k <= UnknownKind || k > Service {
		return errs.NewValueIsInvalidErrorWithCause("shipment kind", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// initialStatus is where a new shipment of this kind starts.
func (k Kind) initialStatus() ShipmentStatus {
	if k == Electronic {
		return InventoryAssigned
	}
	return AwaitingInventory
}

// allows reports whether a stored status is part of this kind's state set.
func (k Kind) allows(s ShipmentStatus) bool {
	if k == Electronic {
		return s == InventoryAssigned || s == Released || s == Shipped || s == FailedOrder
	}
	return s != ShipmentOnHold
}

// hasShipping reports whether shipping cost, shipping tax and discounts apply.
func (k Kind) hasShipping() bool {
	return k == Physical
}
