package importexport

import (
	"encoding/xml"
	"slices"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// OrderDTO is the feed record of an order with its shipments and line items.
type OrderDTO struct {
	XMLName     xml.Name      `xml:"order"`
	OrderNumber string        `xml:"ordernumber"`
	StoreCode   string        `xml:"storecode"`
	CustomerRef string        `xml:"customerref"`
	Status      string        `xml:"status"`
	Currency    string        `xml:"currency"`
	Locale      string        `xml:"locale"`
	CreatedDate time.Time     `xml:"createddate"`
	Shipments   []ShipmentDTO `xml:"shipments>shipment"`
	Fields      []FieldDTO    `xml:"fields>field"`
}

type ShipmentDTO struct {
	GUID             string         `xml:"guid,attr"`
	Number           string         `xml:"number"`
	Kind             string         `xml:"kind"`
	Status           string         `xml:"status"`
	TrackingCode     string         `xml:"trackingcode,omitempty"`
	TaxInclusive     bool           `xml:"taxinclusive"`
	ShippingCost     string         `xml:"shippingcost"`
	ShippingTax      string         `xml:"shippingtax"`
	SubtotalDiscount string         `xml:"subtotaldiscount"`
	Lines            []OrderLineDTO `xml:"lines>line"`
}

type OrderLineDTO struct {
	GUID                   string `xml:"guid,attr"`
	SkuGUID                string `xml:"skuguid"`
	SkuCode                string `xml:"skucode"`
	Quantity               int    `xml:"quantity"`
	AllocatedQuantity      int    `xml:"allocatedquantity"`
	StockQuantity          int    `xml:"stockquantity"`
	PreOrBackOrderQuantity int    `xml:"preorbackorderquantity"`
	UnitPrice              string `xml:"unitprice"`
	Tax                    string `xml:"tax"`
}

type FieldDTO struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

type OrderAdapter struct{}

func NewOrderAdapter() OrderAdapter {
	return OrderAdapter{}
}

func (a OrderAdapter) PopulateDTO(o *order.Order) OrderDTO {
	dto := OrderDTO{
		OrderNumber: o.Number(),
		StoreCode:   o.StoreCode(),
		CustomerRef: o.CustomerRef(),
		Status:      o.Status().String(),
		Currency:    o.Currency().Code(),
		Locale:      o.Locale().String(),
		CreatedDate: o.CreatedAt(),
	}

	for _, s := range o.Shipments() {
		shipment := ShipmentDTO{
			GUID:             s.GUID().String(),
			Number:           s.Number(),
			Kind:             s.Kind().String(),
			Status:           s.StoredStatus().String(),
			TrackingCode:     s.TrackingCode(),
			TaxInclusive:     s.TaxInclusive(),
			ShippingCost:     s.ShippingCost().Amount().String(),
			ShippingTax:      s.ShippingTax().Amount().String(),
			SubtotalDiscount: s.SubtotalDiscount().Amount().String(),
		}
		for _, sku := range s.Skus() {
			shipment.Lines = append(shipment.Lines, OrderLineDTO{
				GUID:                   sku.GUID().String(),
				SkuGUID:                sku.SkuGUID().String(),
				SkuCode:                sku.SkuCode(),
				Quantity:               sku.Quantity(),
				AllocatedQuantity:      sku.AllocatedQuantity(),
				StockQuantity:          sku.StockQuantity(),
				PreOrBackOrderQuantity: sku.PreOrBackOrderQuantity(),
				UnitPrice:              sku.UnitPrice().Amount().String(),
				Tax:                    sku.Tax().Amount().String(),
			})
		}
		dto.Shipments = append(dto.Shipments, shipment)
	}

	fields := o.FieldValues()
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		dto.Fields = append(dto.Fields, FieldDTO{Key: key, Value: fields[key]})
	}

	return dto
}

// PopulateDomain rebuilds an order from dto. The order is not persisted; storage assigns its uid.
func (a OrderAdapter) PopulateDomain(dto OrderDTO) (*order.Order, error) {
	if err := requireFields(dto.OrderNumber,
		requiredField{"ordernumber", dto.OrderNumber},
		requiredField{"storecode", dto.StoreCode},
		requiredField{"customerref", dto.CustomerRef},
		requiredField{"status", dto.Status},
		requiredField{"currency", dto.Currency},
		requiredField{"locale", dto.Locale},
	); err != nil {
		return nil, err
	}

	guid, err := kernel.UUIDFromString(dto.OrderNumber)
	if err != nil {
		return nil, errs.NewPopulationRollbackErrorWithCause(CodeRequiredFieldMissing, err, "ordernumber", dto.OrderNumber)
	}
	currency, err := kernel.ParseCurrency(dto.Currency)
	if err != nil {
		return nil, errs.NewPopulationRuntimeErrorWithCause(CodeUnsupportedCurrency, err, dto.Currency)
	}
	locale, err := kernel.ParseLocale(dto.Locale)
	if err != nil {
		return nil, errs.NewPopulationRuntimeErrorWithCause(CodeLocaleParseFailure, err, dto.Locale, dto.OrderNumber)
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	state := order.OrderState{
		GUID:         guid,
		Status:       status,
		Currency:     currency,
		Locale:       locale,
		StoreCode:    dto.StoreCode,
		CustomerRef:  dto.CustomerRef,
		Fields:       make(map[string]string, len(dto.Fields)),
		CreatedAt:    dto.CreatedDate,
		LastModified: dto.CreatedDate,
	}
	for _, f := range dto.Fields {
		state.Fields[f.Key] = f.Value
	}
	for _, s := range dto.Shipments {
		shipment, shipmentErr := a.populateShipment(s, currency, dto.OrderNumber)
		if shipmentErr != nil {
			return nil, shipmentErr
		}
		state.Shipments = append(state.Shipments, shipment)
	}

	return order.RestoreOrder(state)
}

func (a OrderAdapter) populateShipment(
	dto ShipmentDTO,
	currency kernel.Currency,
	orderNumber string,
) (order.ShipmentState, error) {
	if err := requireFields(orderNumber,
		requiredField{"shipment guid", dto.GUID},
		requiredField{"shipment number", dto.Number},
		requiredField{"shipment kind", dto.Kind},
		requiredField{"shipment status", dto.Status},
	); err != nil {
		return order.ShipmentState{}, err
	}

	guid, err := kernel.UUIDFromString(dto.GUID)
	if err != nil {
		return order.ShipmentState{}, errs.NewPopulationRollbackErrorWithCause(
			CodeRequiredFieldMissing, err, "shipment guid", orderNumber)
	}
	kind, err := order.ParseKind(dto.Kind)
	if err != nil {
		return order.ShipmentState{}, err
	}
	status, err := order.ParseShipmentStatus(dto.Status)
	if err != nil {
		return order.ShipmentState{}, err
	}

	state := order.ShipmentState{
		GUID:         guid,
		Number:       dto.Number,
		Kind:         kind,
		Status:       status,
		TaxInclusive: dto.TaxInclusive,
		TrackingCode: dto.TrackingCode,
	}
	if state.ShippingCost, err = parseMoney(currency, "shippingcost", dto.ShippingCost); err != nil {
		return order.ShipmentState{}, err
	}
	if state.ShippingTax, err = parseMoney(currency, "shippingtax", dto.ShippingTax); err != nil {
		return order.ShipmentState{}, err
	}
	if state.SubtotalDiscount, err = parseMoney(currency, "subtotaldiscount", dto.SubtotalDiscount); err != nil {
		return order.ShipmentState{}, err
	}

	for _, line := range dto.Lines {
		sku, lineErr := a.populateLine(line, currency, orderNumber)
		if lineErr != nil {
			return order.ShipmentState{}, lineErr
		}
		state.Skus = append(state.Skus, sku)
	}
	return state, nil
}

func (a OrderAdapter) populateLine(dto OrderLineDTO, currency kernel.Currency, orderNumber string) (*order.OrderSku, error) {
	if err := requireFields(orderNumber,
		requiredField{"line guid", dto.GUID},
		requiredField{"line skuguid", dto.SkuGUID},
		requiredField{"line skucode", dto.SkuCode},
	); err != nil {
		return nil, err
	}

	guid, err := kernel.UUIDFromString(dto.GUID)
	if err != nil {
		return nil, errs.NewPopulationRollbackErrorWithCause(CodeRequiredFieldMissing, err, "line guid", orderNumber)
	}
	skuGUID, err := kernel.UUIDFromString(dto.SkuGUID)
	if err != nil {
		return nil, errs.NewPopulationRollbackErrorWithCause(CodeRequiredFieldMissing, err, "line skuguid", orderNumber)
	}
	unitPrice, err := parseMoney(currency, "unitprice", dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	tax, err := parseMoney(currency, "tax", dto.Tax)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrderSku(guid, skuGUID, dto.SkuCode, dto.Quantity, dto.AllocatedQuantity,
		dto.StockQuantity, dto.PreOrBackOrderQuantity, unitPrice, tax)
}

// parseMoney reads an amount in currency; an empty value is zero.
func parseMoney(currency kernel.Currency, name, value string) (kernel.Money, error) {
	if value == "" {
		return currency.Zero(), nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return currency.Amount(amount), nil
}
