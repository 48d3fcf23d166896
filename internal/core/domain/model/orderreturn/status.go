package orderreturn

import (
	"fmt"

	"commerce/internal/pkg/errs"
)

type Status int

const (
	UnknownStatus Status = iota
	AwaitingStockReturn
	AwaitingCompletion
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:       "UNKNOWN",
		AwaitingStockReturn: "AWAITING_STOCK_RETURN",
		AwaitingCompletion:  "AWAITING_COMPLETION",
		Completed:           "COMPLETED",
		Cancelled:           "CANCELLED",
	}
}

func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != UnknownStatus && name == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("return status", fmt.Errorf("%q", s))
}

func (s Status) Validate() error {
	if s <= UnknownStatus || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("return status", fmt.Errorf("%d is not a valid return status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal is true for Completed and Cancelled; a terminal return can no longer be edited.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

type Type int

const (
	UnknownType Type = iota
	Return
	Exchange
)

func (t Type) String() string {
	switch t {
	case Return:
		return "RETURN"
	case Exchange:
		return "EXCHANGE"
	case UnknownType:
	}
	return "UNKNOWN"
}

func ParseType(s string) (Type, error) {
	for _, t := range []Type{Return, Exchange} {
		if t.String() == s {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("return type", fmt.Errorf("%q", s))
}

func (t Type) Validate() error {
	if t != Return && t != Exchange {
		return errs.NewValueIsInvalidErrorWithCause("return type", fmt.Errorf("%d is not a valid return type", t))
	}
	return nil
}
