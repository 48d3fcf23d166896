package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via Order.AddShipment")

// Shipment is a subset of the order's line items fulfilled together. Kind-specific behaviour is a
// switch over the Kind tag. A shipment always belongs to exactly one order and reads the order's
// status to compute its effective status.
type Shipment struct {
	guid   kernel.UUID
	number string
	kind   Kind
	status ShipmentStatus
	order  *Order

	skus         []*OrderSku
	taxes        []TaxValue
	taxInclusive bool

	shippingCost     kernel.Money
	shippingTax      kernel.Money
	subtotalDiscount kernel.Money

	trackingCode string
	createdAt    time.Time
	shippedAt    *time.Time

	guard guard.ConstructorGuard
}

// ShipmentState is the persisted form of a shipment, used by RestoreOrder.
type ShipmentState struct {
	GUID             kernel.UUID
	Number           string
	Kind             Kind
	Status           ShipmentStatus
	Skus             []*OrderSku
	Taxes            []TaxValue
	TaxInclusive     bool
	ShippingCost     kernel.Money
	ShippingTax      kernel.Money
	SubtotalDiscount kernel.Money
	TrackingCode     string
	CreatedAt        time.Time
	ShippedAt        *time.Time
}

func newShipment(order *Order, guid kernel.UUID, number string, kind Kind) (*Shipment, error) {
	if err := errors.Join(guid.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(number) == "" {
		return nil, errs.NewValueIsRequiredError("shipment number")
	}

	zero := order.currency.Zero()
	return &Shipment{
		guid:             guid,
		number:           number,
		kind:             kind,
		status:           kind.initialStatus(),
		order:            order,
		shippingCost:     zero,
		shippingTax:      zero,
		subtotalDiscount: zero,
		createdAt:        time.Now().UTC(),
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func restoreShipment(order *Order, state ShipmentState) (*Shipment, error) {
	s, err := newShipment(order, state.GUID, state.Number, state.Kind)
	if err != nil {
		return nil, err
	}
	if err = state.Status.Validate(); err != nil {
		return nil, err
	}
	if !state.Kind.allows(state.Status) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"shipment status",
			fmt.Errorf("%s is not a %s shipment status", state.Status, state.Kind),
		)
	}
	for _, sku := range state.Skus {
		if err = s.checkSku(sku); err != nil {
			return nil, err
		}
	}

	s.status = state.Status
	s.skus = append([]*OrderSku(nil), state.Skus...)
	s.taxes = append([]TaxValue(nil), state.Taxes...)
	s.taxInclusive = state.TaxInclusive
	s.trackingCode = state.TrackingCode
	s.createdAt = state.CreatedAt
	s.shippedAt = state.ShippedAt
	if err = errors.Join(
		s.setMoney(&s.shippingCost, "shipping cost", state.ShippingCost),
		s.setMoney(&s.shippingTax, "shipping tax", state.ShippingTax),
		s.setMoney(&s.subtotalDiscount, "subtotal discount", state.SubtotalDiscount),
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) GUID() kernel.UUID              { return s.guid }
func (s *Shipment) Number() string                 { return s.number }
func (s *Shipment) Kind() Kind                     { return s.kind }
func (s *Shipment) TaxInclusive() bool             { return s.taxInclusive }
func (s *Shipment) TrackingCode() string           { return s.trackingCode }
func (s *Shipment) CreatedAt() time.Time           { return s.createdAt }
func (s *Shipment) ShippedAt() *time.Time          { return s.shippedAt }
func (s *Shipment) ShippingCost() kernel.Money     { return s.shippingCost }
func (s *Shipment) ShippingTax() kernel.Money      { return s.shippingTax }
func (s *Shipment) SubtotalDiscount() kernel.Money { return s.subtotalDiscount }

// StoredStatus is the status as persisted, ignoring the order status.
func (s *Shipment) StoredStatus() ShipmentStatus {
	return s.status
}

// Status is the effective status: a cancelled shipment stays cancelled, otherwise an on-hold or
// cancelled order overrides what the shipment itself records.
func (s *Shipment) Status() ShipmentStatus {
	return EffectiveShipmentStatus(s.status, s.order.status)
}

// IsCancellable is always false for electronic shipments.
func (s *Shipment) IsCancellable() bool {
	return s.kind != Electronic && s.Status().IsCancellable()
}

func (s *Shipment) IsReadyForFundsCapture() bool {
	return s.Status().IsReadyForFundsCapture()
}

func (s *Shipment) Skus() []*OrderSku {
	return append([]*OrderSku(nil), s.skus...)
}

func (s *Shipment) Sku(guid kernel.UUID) (*OrderSku, error) {
	for _, sku := range s.skus {
		if sku.guid.IsEqual(guid) {
			return sku, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order sku", guid)
}

func (s *Shipment) TaxValues() []TaxValue {
	return append([]TaxValue(nil), s.taxes...)
}

// AddSku adds a line item. Items can only be added before the shipment is released.
func (s *Shipment) AddSku(sku *OrderSku) error {
	if err := s.checkSku(sku); err != nil {
		return err
	}
	if s.status != AwaitingInventory && s.status != InventoryAssigned {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment status",
			fmt.Errorf("cannot add sku to %s shipment %s", s.status, s.number),
		)
	}
	if _, err := s.Sku(sku.guid); err == nil {
		return errs.NewValueIsInvalidErrorWithCause("order sku", fmt.Errorf("%s is already in shipment", sku.guid))
	}

	s.skus = append(s.skus, sku)
	s.recomputeAllocationStatus()
	return nil
}

// AllocateSku sets the allocated quantity of a line item, fromStock of which comes from
// warehouse stock, and the quantity still pre/back-ordered. It recomputes the allocation status;
// pre/back-ordered units keep the shipment awaiting inventory.
func (s *Shipment) AllocateSku(skuGUID kernel.UUID, allocatedQuantity, fromStock, preOrBackOrdered int) error {
	sku, err := s.Sku(skuGUID)
	if err != nil {
		return err
	}
	if err = sku.setAllocation(allocatedQuantity, fromStock, preOrBackOrdered); err != nil {
		return err
	}
	s.recomputeAllocationStatus()
	return nil
}

// IsFullyAllocated is true when every line item is allocated.
func (s *Shipment) IsFullyAllocated() bool {
	for _, sku := range s.skus {
		if !sku.IsAllocated() {
			return false
		}
	}
	return true
}

// recomputeAllocationStatus only moves between AwaitingInventory and InventoryAssigned.
func (s *Shipment) recomputeAllocationStatus() {
	if s.kind == Electronic {
		return
	}
	if s.status != AwaitingInventory && s.status != InventoryAssigned {
		return
	}
	if len(s.skus) > 0 && s.IsFullyAllocated() {
		s.status = InventoryAssigned
		return
	}
	s.status = AwaitingInventory
}

// Release hands the shipment to the warehouse. The order must be in progress.
func (s *Shipment) Release() error {
	if s.order.status != InProgress && s.order.status != PartiallyShipped {
		return s.order.status.transitionError("release shipment " + s.number)
	}
	if err := s.changeStatus(Released); err != nil {
		return err
	}
	s.order.addEvent("Shipment released", s.number)
	return nil
}

// Ship marks a released shipment as shipped and re-derives the order status.
func (s *Shipment) Ship(trackingCode string) error {
	if s.Status() != Released {
		return s.transitionError(Shipped)
	}
	if err := s.changeStatus(Shipped); err != nil {
		return err
	}

	shippedAt := time.Now().UTC()
	s.trackingCode = trackingCode
	s.shippedAt = &shippedAt
	s.order.addEvent("Shipment shipped", s.number)
	s.order.recomputeStatus()
	return nil
}

// Cancel cancels a single shipment and re-derives the order status.
func (s *Shipment) Cancel() error {
	if !s.IsCancellable() {
		return s.transitionError(ShipmentCancelled)
	}
	s.status = ShipmentCancelled
	s.order.addEvent("Shipment cancelled", s.number)
	s.order.recomputeStatus()
	return nil
}

func (s *Shipment) changeStatus(to ShipmentStatus) error {
	if !s.kind.allows(to) || !s.status.canTransitionTo(to) {
		return s.transitionError(to)
	}
	s.status = to
	return nil
}

func (s *Shipment) transitionError(to ShipmentStatus) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"shipment status",
		fmt.Errorf("%s shipment %s cannot move from %s to %s", s.kind, s.number, s.Status(), to),
	)
}

// SetShippingCost applies to physical shipments only.
func (s *Shipment) SetShippingCost(cost kernel.Money) error {
	if err := s.requireShipping("shipping cost"); err != nil {
		return err
	}
	return s.setMoney(&s.shippingCost, "shipping cost", cost)
}

// SetSubtotalDiscount applies to physical shipments only.
func (s *Shipment) SetSubtotalDiscount(discount kernel.Money) error {
	if err := s.requireShipping("subtotal discount"); err != nil {
		return err
	}
	return s.setMoney(&s.subtotalDiscount, "subtotal discount", discount)
}

// UpdateTaxValues replaces the stored tax values with the categories in result, updating existing
// categories in place and removing the ones result no longer has. Released, shipped and cancelled
// shipments keep their taxes.
func (s *Shipment) UpdateTaxValues(result TaxResult) error {
	if !s.status.isTaxRecalculationRequired() {
		return nil
	}
	if err := result.Validate(); err != nil {
		return err
	}

	incoming := make(map[string]TaxValue, len(result.Values))
	for _, v := range result.Values {
		incoming[v.Category] = s.roundTax(v)
	}

	taxes := make([]TaxValue, 0, len(result.Values))
	for _, existing := range s.taxes {
		if v, ok := incoming[existing.Category]; ok {
			taxes = append(taxes, v)
			delete(incoming, existing.Category)
		}
	}
	for _, v := range result.Values {
		if _, ok := incoming[v.Category]; ok {
			taxes = append(taxes, incoming[v.Category])
		}
	}
	s.taxes = taxes

	for _, sku := range s.skus {
		sku.tax = s.order.currency.Amount(result.ItemTaxes[sku.guid.String()])
	}
	if s.kind.hasShipping() {
		s.shippingTax = s.order.currency.Amount(result.ShippingTax)
	}
	s.taxInclusive = result.Inclusive
	return nil
}

func (s *Shipment) roundTax(v TaxValue) TaxValue {
	v.Amount = v.Amount.Round(s.order.currency.Scale())
	return v
}

// ItemSubtotal is the sum of unit price times quantity.
func (s *Shipment) ItemSubtotal() kernel.Money {
	total := decimal.Zero
	for _, sku := range s.skus {
		total = total.Add(sku.Subtotal().Amount())
	}
	return s.order.currency.Amount(total)
}

func (s *Shipment) ItemTax() kernel.Money {
	total := decimal.Zero
	for _, sku := range s.skus {
		total = total.Add(sku.tax.Amount())
	}
	return s.order.currency.Amount(total)
}

// TotalTax is item tax plus shipping tax.
func (s *Shipment) TotalTax() kernel.Money {
	return s.order.currency.Amount(s.ItemTax().Amount().Add(s.shippingTax.Amount()))
}

// Total is subtotal minus discount plus shipping, plus tax unless prices include it.
func (s *Shipment) Total() kernel.Money {
	total := s.ItemSubtotal().Amount().
		Sub(s.subtotalDiscount.Amount()).
		Add(s.shippingCost.Amount())
	if !s.taxInclusive {
		total = total.Add(s.TotalTax().Amount())
	}
	return s.order.currency.Amount(total)
}

func (s *Shipment) checkSku(sku *OrderSku) error {
	if err := sku.Validate(); err != nil {
		return err
	}
	if !sku.unitPrice.Currency().IsEqual(s.order.currency) {
		return errs.NewValueIsInvalidErrorWithCause(
			"unit price",
			fmt.Errorf("%s does not match order currency %s", sku.unitPrice.Currency(), s.order.currency),
		)
	}
	return nil
}

func (s *Shipment) requireShipping(param string) error {
	if !s.kind.hasShipping() {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s shipments have no shipping", s.kind))
	}
	return nil
}

func (s *Shipment) setMoney(target *kernel.Money, param string, value kernel.Money) error {
	if err := value.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	if !value.Currency().IsEqual(s.order.currency) {
		return errs.NewValueIsInvalidErrorWithCause(
			param,
			fmt.Errorf("%s does not match order currency %s", value.Currency(), s.order.currency),
		)
	}
	if value.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s is negative", value))
	}
	*target = value
	return nil
}
