package order

import (
	"fmt"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
)

type PaymentType int

const (
	UnknownPaymentType PaymentType = iota
	Authorization
	Capture
	Credit
	ReverseAuthorization
)

func (t PaymentType) String() string {
	switch t {
	case Authorization:
		return "AUTHORIZATION"
	case Capture:
		return "CAPTURE"
	case Credit:
		return "CREDIT"
	case ReverseAuthorization:
		return "REVERSE_AUTHORIZATION"
	case UnknownPaymentType:
	}
	return "UNKNOWN"
}

func ParsePaymentType(s string) (PaymentType, error) {
	for _, t := range []PaymentType{Authorization, Capture, Credit, ReverseAuthorization} {
		if t.String() == s {
			return t, nil
		}
	}
	return UnknownPaymentType, errs.NewValueIsInvalidErrorWithCause("payment type", fmt.Errorf("%q", s))
}

type PaymentStatus int

const (
	UnknownPaymentStatus PaymentStatus = iota
	PaymentApproved
	PaymentFailed
	PaymentPending
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentApproved:
		return "APPROVED"
	case PaymentFailed:
		return "FAILED"
	case PaymentPending:
		return "PENDING"
	case UnknownPaymentStatus:
	}
	return "UNKNOWN"
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for _, st := range []PaymentStatus{PaymentApproved, PaymentFailed, PaymentPending} {
		if st.String() == s {
			return st, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q", s))
}

// Payment is a payment transaction recorded against the order, optionally for one shipment.
type Payment struct {
	GUID           kernel.UUID
	Type           PaymentType
	Status         PaymentStatus
	Amount         kernel.Money
	ShipmentNumber string
	CreatedAt      time.Time
}

func (p Payment) Validate() error {
	if err := p.GUID.Validate(); err != nil {
		return err
	}
	if p.Type == UnknownPaymentType {
		return errs.NewValueIsRequiredError("payment type")
	}
	if p.Status == UnknownPaymentStatus {
		return errs.NewValueIsRequiredError("payment status")
	}
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if p.Amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("payment amount", fmt.Errorf("%s is negative", p.Amount))
	}
	return nil
}
