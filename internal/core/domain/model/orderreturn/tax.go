package orderreturn

import (
	"commerce/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// ProportionalTax derives the tax of this return from the tax already charged on the shipment.
// A line carries the order line tax scaled by returned/ordered quantity; shipping tax is scaled
// by the ratio of the return shipping cost to the shipment shipping cost. Category amounts are
// scaled by the share of the shipment tax the return refunds.
func (r *OrderReturn) ProportionalTax(shipment *order.Shipment) order.TaxResult {
	result := order.TaxResult{
		Inclusive:   shipment.TaxInclusive(),
		ItemTaxes:   make(map[string]decimal.Decimal, len(r.skus)),
		ShippingTax: decimal.Zero,
	}

	itemTax := decimal.Zero
	for _, s := range r.skus {
		line, err := shipment.Sku(s.orderSkuGUID)
		if err != nil || line.Quantity() == 0 {
			continue
		}
		tax := line.Tax().Amount().
			Mul(decimal.NewFromInt(int64(s.quantity))).
			Div(decimal.NewFromInt(int64(line.Quantity()))).
			Round(r.currency.Scale())
		result.ItemTaxes[s.guid.String()] = tax
		itemTax = itemTax.Add(tax)
	}

	if cost := shipment.ShippingCost().Amount(); cost.IsPositive() {
		result.ShippingTax = shipment.ShippingTax().Amount().
			Mul(r.shippingCost.Amount()).
			Div(cost).
			Round(r.currency.Scale())
	}

	charged := shipment.TotalTax().Amount()
	if !charged.IsPositive() {
		return result
	}
	share := itemTax.Add(result.ShippingTax).Div(charged)
	for _, v := range shipment.TaxValues() {
		v.Amount = v.Amount.Mul(share).Round(r.currency.Scale())
		result.Values = append(result.Values, v)
	}
	return result
}
