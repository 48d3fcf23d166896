package orderreturn

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrReturnIsNotConstructed = errors.New("OrderReturn must be created via NewOrderReturn constructor")

// OrderReturn is a return or exchange against one shipped shipment of an order.
type OrderReturn struct {
	uid            int64
	rmaCode        string
	returnType     Type
	status         Status
	orderNumber    string
	shipmentNumber string
	currency       kernel.Currency
	physicalReturn bool
	comment        string
	createdBy      string
	receivedBy     string

	skus  []*ReturnSku
	taxes []order.TaxValue

	shippingCost      kernel.Money
	shippingTax       kernel.Money
	shipmentDiscount  kernel.Money
	lessRestockAmount kernel.Money
	taxInclusive      bool

	subtotal       kernel.Money
	itemTax        kernel.Money
	beforeTaxTotal kernel.Money
	total          kernel.Money

	exchangeOrderNumber string
	exchangeOrderTotal  *kernel.Money

	createdAt    time.Time
	lastModified time.Time
	version      int64

	guard guard.ConstructorGuard
}

// State is the persisted form of an OrderReturn.
type State struct {
	UID                 int64
	RMACode             string
	Type                Type
	Status              Status
	OrderNumber         string
	ShipmentNumber      string
	Currency            kernel.Currency
	PhysicalReturn      bool
	Comment             string
	CreatedBy           string
	ReceivedBy          string
	Skus                []ReturnSkuState
	Taxes               []order.TaxValue
	ShippingCost        kernel.Money
	ShippingTax         kernel.Money
	ShipmentDiscount    kernel.Money
	LessRestockAmount   kernel.Money
	TaxInclusive        bool
	ExchangeOrderNumber string
	ExchangeOrderTotal  *kernel.Money
	CreatedAt           time.Time
	LastModified        time.Time
	Version             int64
}

// NewOrderReturn opens a return for a shipped shipment. Every shipped line is added with a
// return quantity of zero; callers set quantities and then Normalize drops the untouched lines.
func NewOrderReturn(
	rmaCode string,
	returnType Type,
	o *order.Order,
	shipmentNumber string,
	physicalReturn bool,
	createdBy string,
) (*OrderReturn, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(rmaCode) == "" {
		return nil, errs.NewValueIsRequiredError("rma code")
	}
	if err := returnType.Validate(); err != nil {
		return nil, err
	}

	shipment, err := o.Shipment(shipmentNumber)
	if err != nil {
		return nil, err
	}
	if shipment.Status() != order.Shipped {
		return nil, errs.NewServiceError(
			fmt.Sprintf("shipment %s is %s; only shipped shipments can be returned", shipmentNumber, shipment.Status()),
		)
	}

	now := time.Now().UTC()
	cur := o.Currency()
	r := &OrderReturn{
		rmaCode:        rmaCode,
		returnType:     returnType,
		status:         AwaitingStockReturn,
		orderNumber:    o.Number(),
		shipmentNumber: shipmentNumber,
		currency:       cur,
		physicalReturn: physicalReturn,
		createdBy:      createdBy,
		createdAt:      now,
		lastModified:   now,
		guard:          guard.NewConstructorGuard(),
	}
	r.resetMoney()

	for _, sku := range shipment.Skus() {
		r.skus = append(r.skus, &ReturnSku{
			guid:               kernel.NewUUID(),
			orderSkuGUID:       sku.GUID(),
			skuCode:            sku.SkuCode(),
			orderedQuantity:    sku.Quantity(),
			returnableQuantity: sku.Quantity(),
			unitPrice:          sku.UnitPrice(),
			tax:                cur.Zero(),
		})
	}
	return r, nil
}

// RestoreOrderReturn rebuilds a persisted return. Totals are recomputed from the stored amounts.
func RestoreOrderReturn(state State) (*OrderReturn, error) {
	if strings.TrimSpace(state.RMACode) == "" {
		return nil, errs.NewValueIsRequiredError("rma code")
	}
	if err := errors.Join(
		state.Type.Validate(),
		state.Status.Validate(),
		state.Currency.Validate(),
	); err != nil {
		return nil, err
	}

	r := &OrderReturn{
		uid:                 state.UID,
		rmaCode:             state.RMACode,
		returnType:          state.Type,
		status:              state.Status,
		orderNumber:         state.OrderNumber,
		shipmentNumber:      state.ShipmentNumber,
		currency:            state.Currency,
		physicalReturn:      state.PhysicalReturn,
		comment:             state.Comment,
		createdBy:           state.CreatedBy,
		receivedBy:          state.ReceivedBy,
		taxes:               slices.Clone(state.Taxes),
		shippingCost:        state.ShippingCost,
		shippingTax:         state.ShippingTax,
		shipmentDiscount:    state.ShipmentDiscount,
		lessRestockAmount:   state.LessRestockAmount,
		taxInclusive:        state.TaxInclusive,
		exchangeOrderNumber: state.ExchangeOrderNumber,
		exchangeOrderTotal:  state.ExchangeOrderTotal,
		createdAt:           state.CreatedAt,
		lastModified:        state.LastModified,
		version:             state.Version,
		guard:               guard.NewConstructorGuard(),
	}
	for _, ss := range state.Skus {
		sku, err := restoreReturnSku(ss)
		if err != nil {
			return nil, err
		}
		r.skus = append(r.skus, sku)
	}
	r.calculateTotals()
	return r, nil
}

func (r *OrderReturn) Validate() error {
	if r == nil {
		return ErrReturnIsNotConstructed
	}
	return r.guard.Validate(ErrReturnIsNotConstructed)
}

func (r *OrderReturn) UID() int64                      { return r.uid }
func (r *OrderReturn) RMACode() string                 { return r.rmaCode }
func (r *OrderReturn) Type() Type                      { return r.returnType }
func (r *OrderReturn) Status() Status                  { return r.status }
func (r *OrderReturn) OrderNumber() string             { return r.orderNumber }
func (r *OrderReturn) ShipmentNumber() string          { return r.shipmentNumber }
func (r *OrderReturn) Currency() kernel.Currency       { return r.currency }
func (r *OrderReturn) PhysicalReturn() bool            { return r.physicalReturn }
func (r *OrderReturn) Comment() string                 { return r.comment }
func (r *OrderReturn) CreatedBy() string               { return r.createdBy }
func (r *OrderReturn) ReceivedBy() string              { return r.receivedBy }
func (r *OrderReturn) TaxValues() []order.TaxValue     { return slices.Clone(r.taxes) }
func (r *OrderReturn) ShippingCost() kernel.Money      { return r.shippingCost }
func (r *OrderReturn) ShippingTax() kernel.Money       { return r.shippingTax }
func (r *OrderReturn) ShipmentDiscount() kernel.Money  { return r.shipmentDiscount }
func (r *OrderReturn) LessRestockAmount() kernel.Money { return r.lessRestockAmount }
func (r *OrderReturn) TaxInclusive() bool              { return r.taxInclusive }
func (r *OrderReturn) Subtotal() kernel.Money          { return r.subtotal }
func (r *OrderReturn) ItemTax() kernel.Money           { return r.itemTax }
func (r *OrderReturn) BeforeTaxTotal() kernel.Money    { return r.beforeTaxTotal }
func (r *OrderReturn) Total() kernel.Money             { return r.total }
func (r *OrderReturn) ExchangeOrderNumber() string     { return r.exchangeOrderNumber }
func (r *OrderReturn) CreatedAt() time.Time            { return r.createdAt }
func (r *OrderReturn) LastModified() time.Time         { return r.lastModified }
func (r *OrderReturn) Version() int64                  { return r.version }

func (r *OrderReturn) IsPersisted() bool { return r.uid > 0 }

// MarkPersisted is called by the repository after a successful write.
func (r *OrderReturn) MarkPersisted(uid int64, modifiedAt time.Time, version int64) {
	r.uid = uid
	r.lastModified = modifiedAt
	r.version = version
}

func (r *OrderReturn) Skus() []*ReturnSku {
	return slices.Clone(r.skus)
}

func (r *OrderReturn) Sku(guid kernel.UUID) (*ReturnSku, error) {
	for _, s := range r.skus {
		if s.guid.IsEqual(guid) {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("return sku", guid)
}

// SkuForOrderSku finds the return line for a shipped OrderSku.
func (r *OrderReturn) SkuForOrderSku(orderSkuGUID kernel.UUID) (*ReturnSku, error) {
	for _, s := range r.skus {
		if s.orderSkuGUID.IsEqual(orderSkuGUID) {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order sku", orderSkuGUID)
}

func (r *OrderReturn) IsInTerminalState() bool {
	return r.status.IsTerminal()
}

// SetReturnQuantity sets how many units of a shipped line come back.
func (r *OrderReturn) SetReturnQuantity(orderSkuGUID kernel.UUID, quantity int, reason string) error {
	if err := r.checkEditable(); err != nil {
		return err
	}
	sku, err := r.SkuForOrderSku(orderSkuGUID)
	if err != nil {
		return err
	}
	if err = sku.setQuantity(quantity); err != nil {
		return err
	}
	sku.reason = reason
	return nil
}

func (r *OrderReturn) SetComment(comment string) error {
	if err := r.checkEditable(); err != nil {
		return err
	}
	r.comment = comment
	return nil
}

func (r *OrderReturn) SetShippingCost(cost kernel.Money) error {
	if err := r.checkEditable(); err != nil {
		return err
	}
	return r.setMoney(&r.shippingCost, "shipping cost", cost)
}

// SetShipmentDiscount stores the discount. Recalculate ignores it while it exceeds the total.
func (r *OrderReturn) SetShipmentDiscount(discount kernel.Money) error {
	if err := r.checkEditable(); err != nil {
		return err
	}
	return r.setMoney(&r.shipmentDiscount, "shipment discount", discount)
}

// SetLessRestockAmount stores the restocking fee. Recalculate resets it to zero while it
// exceeds the total.
func (r *OrderReturn) SetLessRestockAmount(amount kernel.Money) error {
	if err := r.checkEditable(); err != nil {
		return err
	}
	return r.setMoney(&r.lessRestockAmount, "restock amount", amount)
}

// SetExchangeOrder links the replacement order of an exchange.
func (r *OrderReturn) SetExchangeOrder(orderNumber string, total kernel.Money) error {
	if r.returnType != Exchange {
		return errs.NewServiceError(fmt.Sprintf("return %s is not an exchange", r.rmaCode))
	}
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("exchange order number")
	}
	if !total.Currency().IsEqual(r.currency) {
		return errs.NewValueIsInvalidErrorWithCause(
			"exchange order total",
			fmt.Errorf("%s does not match %s", total.Currency(), r.currency),
		)
	}
	r.exchangeOrderNumber = orderNumber
	r.exchangeOrderTotal = &total
	return nil
}

// Normalize removes lines nobody asked to return.
func (r *OrderReturn) Normalize() {
	r.skus = slices.DeleteFunc(r.skus, func(s *ReturnSku) bool { return s.quantity == 0 })
}

// Recalculate applies a tax calculation to the return and recomputes every total:
//
//	subtotal       = sum(unit price x quantity)
//	beforeTaxTotal = subtotal + shipping cost
//	total          = beforeTaxTotal + item tax + shipping tax (unless tax inclusive)
//	                 - shipment discount (when not above the total)
//	                 - restock amount (when not above the total, otherwise reset to zero)
//
// ItemTaxes in result are keyed by return sku GUID.
func (r *OrderReturn) Recalculate(result order.TaxResult) error {
	if err := r.checkEditable(); err != nil {
		return err
	}
	if err := result.Validate(); err != nil {
		return err
	}

	r.taxes = make([]order.TaxValue, 0, len(result.Values))
	for _, v := range result.Values {
		v.Amount = v.Amount.Round(r.currency.Scale())
		r.taxes = append(r.taxes, v)
	}
	for _, s := range r.skus {
		s.tax = r.currency.Amount(result.ItemTaxes[s.guid.String()])
	}
	r.shippingTax = r.currency.Amount(result.ShippingTax)
	r.taxInclusive = result.Inclusive

	r.calculateTotals()
	return nil
}

func (r *OrderReturn) calculateTotals() {
	subtotal, itemTax := decimal.Zero, decimal.Zero
	for _, s := range r.skus {
		subtotal = subtotal.Add(s.Amount().Amount())
		itemTax = itemTax.Add(s.tax.Amount())
	}
	r.subtotal = r.currency.Amount(subtotal)
	r.itemTax = r.currency.Amount(itemTax)

	total := r.subtotal.Amount().Add(r.shippingCost.Amount())
	r.beforeTaxTotal = r.currency.Amount(total)

	if !r.taxInclusive {
		total = total.Add(r.itemTax.Amount()).Add(r.shippingTax.Amount())
	}
	if r.shipmentDiscount.Amount().LessThanOrEqual(total) {
		total = total.Sub(r.shipmentDiscount.Amount())
	}
	if r.lessRestockAmount.Amount().LessThanOrEqual(total) {
		total = total.Sub(r.lessRestockAmount.Amount())
	} else {
		r.lessRestockAmount = r.currency.Zero()
	}
	r.total = r.currency.Amount(total)
}

// RefundTotal is what goes back to the customer: for an exchange, the return total less the
// replacement order total.
func (r *OrderReturn) RefundTotal() kernel.Money {
	if r.returnType == Exchange && r.exchangeOrderTotal != nil {
		return r.currency.Amount(r.total.Amount().Sub(r.exchangeOrderTotal.Amount()))
	}
	return r.total
}

func (r *OrderReturn) ExchangeOrderTotal() *kernel.Money {
	return r.exchangeOrderTotal
}

// IsFullyReceived is true when every line was received in full.
func (r *OrderReturn) IsFullyReceived() bool {
	for _, s := range r.skus {
		if !s.IsFullyReceived() {
			return false
		}
	}
	return true
}

// IsPartiallyReceived is true when something but not everything came back.
func (r *OrderReturn) IsPartiallyReceived() bool {
	someReceived, fullyReceived := false, true
	for _, s := range r.skus {
		if !s.IsFullyReceived() {
			fullyReceived = false
		}
		if s.receivedQuantity > 0 {
			someReceived = true
		}
	}
	return someReceived && !fullyReceived
}

// ReceiveQuantity books returned stock for a line and updates the status.
func (r *OrderReturn) ReceiveQuantity(returnSkuGUID kernel.UUID, quantity int, receivedBy string) error {
	if err := r.checkEditable(); err != nil {
		return err
	}
	if !r.physicalReturn {
		return errs.NewServiceError(fmt.Sprintf("return %s does not expect physical stock", r.rmaCode))
	}
	sku, err := r.Sku(returnSkuGUID)
	if err != nil {
		return err
	}
	remaining := sku.quantity - sku.receivedQuantity
	if quantity <= 0 || quantity > remaining {
		return errs.NewValueIsOutOfRangeError("received quantity", quantity, 1, remaining)
	}

	sku.receivedQuantity += quantity
	r.receivedBy = receivedBy
	r.UpdateStatus()
	return nil
}

// UpdateStatus derives the status from received quantities. Terminal returns are left alone.
func (r *OrderReturn) UpdateStatus() {
	if r.status.IsTerminal() {
		return
	}
	if r.IsFullyReceived() {
		r.status = AwaitingCompletion
		return
	}
	r.status = AwaitingStockReturn
}

// Complete closes the return. Physical returns must have been fully received.
func (r *OrderReturn) Complete() error {
	if err := r.checkEditable(); err != nil {
		return err
	}
	if r.physicalReturn && !r.IsFullyReceived() {
		return errs.NewServiceError(fmt.Sprintf("return %s is still awaiting stock", r.rmaCode))
	}
	r.status = Completed
	return nil
}

func (r *OrderReturn) Cancel() error {
	if err := r.checkEditable(); err != nil {
		return err
	}
	r.status = Cancelled
	return nil
}

// UpdateReturnableQuantity works out, for every line of this return, how much is still
// returnable given the other returns of the same shipment. Cancelled returns and this return
// itself are not counted. Exceeding the shipped quantity is a ServiceError.
func (r *OrderReturn) UpdateReturnableQuantity(shipment *order.Shipment, others []*OrderReturn) error {
	if shipment.Number() != r.shipmentNumber {
		return errs.NewServiceError(
			fmt.Sprintf("shipment %s does not belong to return %s", shipment.Number(), r.rmaCode),
		)
	}

	returnable := make(map[kernel.UUID]int, len(shipment.Skus()))
	for _, sku := range shipment.Skus() {
		returnable[sku.GUID()] = sku.Quantity()
	}

	for _, other := range others {
		if other.status == Cancelled || other.shipmentNumber != r.shipmentNumber || other.rmaCode == r.rmaCode {
			continue
		}
		for _, s := range other.skus {
			left, ok := returnable[s.orderSkuGUID]
			if !ok {
				continue
			}
			left -= s.quantity
			if left < 0 {
				return errs.NewServiceError("total quantity of returns exceeds the order quantity")
			}
			returnable[s.orderSkuGUID] = left
		}
	}

	for _, s := range r.skus {
		left, ok := returnable[s.orderSkuGUID]
		if !ok {
			continue
		}
		if s.quantity > left {
			return errs.NewServiceError(
				fmt.Sprintf("cannot return %d of %s, only %d returnable", s.quantity, s.skuCode, left),
			)
		}
		s.returnableQuantity = left
	}
	return nil
}

func (r *OrderReturn) checkEditable() error {
	if r.status.IsTerminal() {
		return errs.NewIllegalReturnStateError(r.rmaCode, r.status.String())
	}
	return nil
}

func (r *OrderReturn) resetMoney() {
	zero := r.currency.Zero()
	r.shippingCost, r.shippingTax = zero, zero
	r.shipmentDiscount, r.lessRestockAmount = zero, zero
	r.subtotal, r.itemTax, r.beforeTaxTotal, r.total = zero, zero, zero, zero
}

func (r *OrderReturn) setMoney(target *kernel.Money, param string, value kernel.Money) error {
	if err := value.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	if !value.Currency().IsEqual(r.currency) {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s does not match %s", value.Currency(), r.currency))
	}
	if value.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s is negative", value))
	}
	*target = value
	return nil
}
