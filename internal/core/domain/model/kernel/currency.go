package kernel

import (
	"fmt"
	"strings"

	"commerce/internal/pkg/errs"

	"golang.org/x/text/currency"
)

// Currency is an ISO 4217 currency with its standard minor-unit scale.
type Currency struct {
	unit  currency.Unit
	valid bool
}

// ParseCurrency accepts a three-letter ISO code in any case.
func ParseCurrency(code string) (Currency, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Currency{}, errs.NewValueIsRequiredError("currency")
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Currency{}, errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q: %w", code, err))
	}
	return Currency{unit: unit, valid: true}, nil
}

// MustParseCurrency panics on an unknown code; intended for fixtures and constants.
func MustParseCurrency(code string) Currency {
	c, err := ParseCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Currency) Code() string {
	if !c.valid {
		return ""
	}
	return c.unit.String()
}

// Scale is the number of minor-unit digits, e.g. 2 for USD and 0 for JPY.
func (c Currency) Scale() int32 {
	scale, _ := currency.Standard.Rounding(c.unit)
	return int32(scale)
}

func (c Currency) IsEqual(other Currency) bool {
	return c.valid == other.valid && c.unit == other.unit
}

func (c Currency) Validate() error {
	if !c.valid {
		return errs.NewValueIsRequiredError("currency")
	}
	return nil
}

func (c Currency) String() string {
	return c.Code()
}
