package order

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order that did not come from NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of order management. The order number is the order GUID.
//
// Invariants:
//   - Shipments can only be added once the order is persisted (uid > 0).
//   - Shipment numbers are "{orderNumber}-{sequence}" and unique within the order.
//   - While InProgress, PartiallyShipped or Completed the status follows the shipments;
//     OnHold, Cancelled, Failed and AwaitingExchange are explicit.
//   - All amounts are in the order currency.
type Order struct {
	uid         int64
	guid        kernel.UUID
	status      Status
	currency    kernel.Currency
	locale      kernel.Locale
	storeCode   string
	customerRef string

	shipments   []*Shipment
	payments    []Payment
	returnCodes []string
	events      []Event
	fields      map[string]string

	createdAt    time.Time
	lastModified time.Time
	version      int64

	guard guard.ConstructorGuard
}

// OrderState is the persisted form of an order, used by RestoreOrder.
type OrderState struct {
	UID          int64
	GUID         kernel.UUID
	Status       Status
	Currency     kernel.Currency
	Locale       kernel.Locale
	StoreCode    string
	CustomerRef  string
	Shipments    []ShipmentState
	Payments     []Payment
	ReturnCodes  []string
	Events       []Event
	Fields       map[string]string
	CreatedAt    time.Time
	LastModified time.Time
	Version      int64
}

// NewOrder creates an order in Created status with no shipments.
func NewOrder(
	guid kernel.UUID,
	storeCode string,
	currency kernel.Currency,
	locale kernel.Locale,
	customerRef string,
) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		status:       Created,
		fields:       make(map[string]string),
		createdAt:    now,
		lastModified: now,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setGUID(guid),
		order.setStoreCode(storeCode),
		order.setCurrency(currency),
		order.setLocale(locale),
		order.setCustomerRef(customerRef),
	); err != nil {
		return nil, err
	}

	order.addEvent("Order created", "")
	return order, nil
}

// RestoreOrder rebuilds an order from its persisted state without re-running creation rules.
func RestoreOrder(state OrderState) (*Order, error) {
	order := &Order{
		uid:          state.UID,
		fields:       make(map[string]string, len(state.Fields)),
		createdAt:    state.CreatedAt,
		lastModified: state.LastModified,
		version:      state.Version,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setGUID(state.GUID),
		order.setStoreCode(state.StoreCode),
		order.setCurrency(state.Currency),
		order.setLocale(state.Locale),
		order.setCustomerRef(state.CustomerRef),
		state.Status.Validate(),
	); err != nil {
		return nil, err
	}
	order.status = state.Status

	for _, ss := range state.Shipments {
		shipment, err := restoreShipment(order, ss)
		if err != nil {
			return nil, err
		}
		order.shipments = append(order.shipments, shipment)
	}
	order.payments = slices.Clone(state.Payments)
	order.returnCodes = slices.Clone(state.ReturnCodes)
	order.events = slices.Clone(state.Events)
	maps.Copy(order.fields, state.Fields)

	return order, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.guid.IsEqual(other.guid)
}

func (o *Order) UID() int64                { return o.uid }
func (o *Order) GUID() kernel.UUID         { return o.guid }
func (o *Order) Number() string            { return o.guid.String() }
func (o *Order) Status() Status            { return o.status }
func (o *Order) Currency() kernel.Currency { return o.currency }
func (o *Order) Locale() kernel.Locale     { return o.locale }
func (o *Order) StoreCode() string         { return o.storeCode }
func (o *Order) CustomerRef() string       { return o.customerRef }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) LastModified() time.Time   { return o.lastModified }
func (o *Order) Version() int64            { return o.version }

func (o *Order) IsPersisted() bool {
	return o.uid > 0
}

// MarkPersisted is called by the repository after a successful write.
func (o *Order) MarkPersisted(uid int64, modifiedAt time.Time, version int64) {
	o.uid = uid
	o.lastModified = modifiedAt
	o.version = version
}

func (o *Order) IsCancellable() bool { return o.status.IsCancellable() }
func (o *Order) IsHoldable() bool    { return o.status.IsHoldable() }
func (o *Order) IsReleasable() bool  { return o.status.IsReleasable() }

// IsRefundable is true once anything has been shipped.
func (o *Order) IsRefundable() bool {
	for _, s := range o.shipments {
		if s.status == Shipped {
			return true
		}
	}
	return false
}

func (o *Order) Shipments() []*Shipment {
	return slices.Clone(o.shipments)
}

// Shipment looks a shipment up by its number.
func (o *Order) Shipment(number string) (*Shipment, error) {
	for _, s := range o.shipments {
		if s.number == number {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("shipment", number)
}

// ShipmentsWithStatus filters by effective status.
func (o *Order) ShipmentsWithStatus(status ShipmentStatus) []*Shipment {
	var out []*Shipment
	for _, s := range o.shipments {
		if s.Status() == status {
			out = append(out, s)
		}
	}
	return out
}

// AddShipment appends a new shipment numbered after the order. The order must be persisted.
func (o *Order) AddShipment(guid kernel.UUID, kind Kind) (*Shipment, error) {
	if !o.IsPersisted() {
		return nil, errs.NewOrderNotPersistedError(o.Number())
	}
	if o.status.IsTerminal() {
		return nil, o.status.transitionError("add a shipment")
	}

	number := fmt.Sprintf("%s-%d", o.Number(), len(o.shipments)+1)
	shipment, err := newShipment(o, guid, number, kind)
	if err != nil {
		return nil, err
	}

	o.shipments = append(o.shipments, shipment)
	o.addEvent("Shipment added", number)
	return shipment, nil
}

// Hold puts a created or in-progress order on hold.
func (o *Order) Hold() error {
	if !o.status.IsHoldable() {
		return o.status.transitionError("hold")
	}
	o.status = OnHold
	o.addEvent("Order held", "")
	return nil
}

// Release moves a created, held or exchange-awaiting order to InProgress and re-derives the
// status from the shipments.
func (o *Order) Release() error {
	if !o.status.IsReleasable() {
		return o.status.transitionError("release")
	}
	o.status = InProgress
	o.addEvent("Order released", "")
	o.recomputeStatus()
	return nil
}

// SetInProgress starts fulfilment of a created order.
func (o *Order) SetInProgress() error {
	if o.status != Created {
		return o.status.transitionError("start fulfilment")
	}
	o.status = InProgress
	o.recomputeStatus()
	return nil
}

// SetStatusCreated returns an exchange order to Created once the exchange no longer blocks it.
func (o *Order) SetStatusCreated() error {
	if o.status != AwaitingExchange {
		return o.status.transitionError("reset to created")
	}
	o.status = Created
	return nil
}

// AwaitExchangeCompletion parks a created exchange order until the returned goods arrive.
func (o *Order) AwaitExchangeCompletion() error {
	if o.status != Created {
		return o.status.transitionError("await exchange completion")
	}
	o.status = AwaitingExchange
	o.addEvent("Order awaiting exchange", "")
	return nil
}

// Cancel cancels the order and every shipment that can still be cancelled.
func (o *Order) Cancel() error {
	if !o.status.IsCancellable() {
		return o.status.transitionError("cancel")
	}
	for _, s := range o.shipments {
		if s.IsCancellable() {
			s.status = ShipmentCancelled
		}
	}
	o.status = Cancelled
	o.addEvent("Order cancelled", "")
	return nil
}

// Fail marks the order failed, e.g. after a payment failure. Open shipments become FailedOrder.
func (o *Order) Fail() error {
	if o.status.IsTerminal() {
		return o.status.transitionError("fail")
	}
	for _, s := range o.shipments {
		if !s.status.IsTerminal() {
			s.status = FailedOrder
		}
	}
	o.status = Failed
	o.addEvent("Order failed", "")
	return nil
}

// recomputeStatus derives the status from the shipments. Explicit statuses are left untouched.
func (o *Order) recomputeStatus() {
	if !o.status.isDerived() || len(o.shipments) == 0 {
		return
	}

	var shipped, cancelled int
	for _, s := range o.shipments {
		switch s.status {
		case Shipped:
			shipped++
		case ShipmentCancelled:
			cancelled++
		default:
		}
	}

	n := len(o.shipments)
	next := InProgress
	switch {
	case shipped == n:
		next = Completed
	case cancelled == n:
		next = Cancelled
	case shipped+cancelled == n:
		next = Completed
	case shipped > 0:
		next = PartiallyShipped
	}

	if next != o.status {
		o.status = next
		o.addEvent("Order status changed", next.String())
	}
}

func (o *Order) Payments() []Payment {
	return slices.Clone(o.payments)
}

// AddPayment records a payment. A capture must name a shipment that is ready for funds capture.
func (o *Order) AddPayment(p Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.Amount.Currency().IsEqual(o.currency) {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment amount",
			fmt.Errorf("%s does not match order currency %s", p.Amount.Currency(), o.currency),
		)
	}
	if p.Type == Capture {
		shipment, err := o.Shipment(p.ShipmentNumber)
		if err != nil {
			return errs.NewServiceErrorWithCause("capture requires a shipment", err)
		}
		if !shipment.IsReadyForFundsCapture() {
			return errs.NewServiceError(
				fmt.Sprintf("shipment %s is %s and not ready for funds capture", shipment.number, shipment.Status()),
			)
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	o.payments = append(o.payments, p)
	o.addEvent("Payment "+strings.ToLower(p.Type.String()), p.Amount.String())
	return nil
}

func (o *Order) ReturnCodes() []string {
	return slices.Clone(o.returnCodes)
}

// AttachReturn records a return against the order by RMA code.
func (o *Order) AttachReturn(rmaCode string) error {
	if strings.TrimSpace(rmaCode) == "" {
		return errs.NewValueIsRequiredError("rma code")
	}
	if slices.Contains(o.returnCodes, rmaCode) {
		return nil
	}
	o.returnCodes = append(o.returnCodes, rmaCode)
	o.addEvent("Return created", rmaCode)
	return nil
}

func (o *Order) Events() []Event {
	return slices.Clone(o.events)
}

func (o *Order) addEvent(title, note string) {
	o.events = append(o.events, Event{Title: title, Note: note, CreatedAt: time.Now().UTC()})
}

func (o *Order) FieldValue(key string) (string, bool) {
	v, ok := o.fields[key]
	return v, ok
}

func (o *Order) SetFieldValue(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errs.NewValueIsRequiredError("field key")
	}
	o.fields[key] = value
	return nil
}

func (o *Order) RemoveFieldValue(key string) {
	delete(o.fields, key)
}

func (o *Order) FieldValues() map[string]string {
	return maps.Clone(o.fields)
}

// Subtotal is the item subtotal over all shipments.
func (o *Order) Subtotal() kernel.Money {
	return o.sum(o.shipments, (*Shipment).ItemSubtotal)
}

// Total is the sum of shipment totals.
func (o *Order) Total() kernel.Money {
	return o.sum(o.shipments, (*Shipment).Total)
}

// AdjustedTotal excludes cancelled shipments.
func (o *Order) AdjustedTotal() kernel.Money {
	active := slices.DeleteFunc(slices.Clone(o.shipments), func(s *Shipment) bool {
		return s.status == ShipmentCancelled
	})
	return o.sum(active, (*Shipment).Total)
}

func (o *Order) TotalTax() kernel.Money {
	return o.sum(o.shipments, (*Shipment).TotalTax)
}

func (o *Order) TotalShippingCost() kernel.Money {
	return o.sum(o.shipments, (*Shipment).ShippingCost)
}

func (o *Order) TotalDiscount() kernel.Money {
	return o.sum(o.shipments, (*Shipment).SubtotalDiscount)
}

func (o *Order) sum(shipments []*Shipment, amount func(*Shipment) kernel.Money) kernel.Money {
	total := decimal.Zero
	for _, s := range shipments {
		total = total.Add(amount(s).Amount())
	}
	return o.currency.Amount(total)
}

func (o *Order) setGUID(guid kernel.UUID) error {
	if err := guid.Validate(); err != nil {
		return err
	}
	o.guid = guid
	return nil
}

func (o *Order) setStoreCode(storeCode string) error {
	if strings.TrimSpace(storeCode) == "" {
		return errs.NewValueIsRequiredError("store code")
	}
	o.storeCode = storeCode
	return nil
}

func (o *Order) setCurrency(currency kernel.Currency) error {
	if err := currency.Validate(); err != nil {
		return err
	}
	o.currency = currency
	return nil
}

func (o *Order) setLocale(locale kernel.Locale) error {
	if err := locale.Validate(); err != nil {
		return err
	}
	o.locale = locale
	return nil
}

func (o *Order) setCustomerRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return errs.NewValueIsRequiredError("customer reference")
	}
	o.customerRef = ref
	return nil
}
