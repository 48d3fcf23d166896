package order

import (
	"fmt"
	"strings"

	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// TaxValue is the amount of one tax category charged on a shipment.
type TaxValue struct {
	Category    string
	DisplayName string
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// TaxResult is the output of a tax calculation for one shipment.
type TaxResult struct {
	Inclusive   bool
	Values      []TaxValue
	ItemTaxes   map[string]decimal.Decimal // keyed by OrderSku GUID
	ShippingTax decimal.Decimal
}

// Validate rejects empty or duplicate category names.
func (r TaxResult) Validate() error {
	seen := make(map[string]struct{}, len(r.Values))
	for _, v := range r.Values {
		if strings.TrimSpace(v.Category) == "" {
			return errs.NewValueIsRequiredError("tax category")
		}
		if _, ok := seen[v.Category]; ok {
			return errs.NewValueIsInvalidErrorWithCause("tax category", fmt.Errorf("%q is duplicated", v.Category))
		}
		seen[v.Category] = struct{}{}
	}
	return nil
}
