// Package orderrepo maps the order aggregate onto the orders, order_shipments, order_skus,
// order_payments and order_events tables.
package orderrepo

import (
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. UID is the surrogate key assigned on insert; GUID is the order
// number.
type OrderDTO struct {
	UID          int64             `gorm:"primaryKey;autoIncrement"`
	GUID         uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null"`
	Status       int               `gorm:"index"`
	Currency     string            `gorm:"size:3;not null"`
	Locale       string            `gorm:"size:35;not null"`
	StoreCode    string            `gorm:"size:64;index;not null"`
	CustomerRef  string            `gorm:"size:255;not null"`
	ReturnCodes  []string          `gorm:"serializer:json"`
	Fields       map[string]string `gorm:"serializer:json"`
	CreatedAt    time.Time
	LastModified time.Time
	Version      int64

	Shipments []ShipmentDTO `gorm:"foreignKey:OrderUID;references:UID;constraint:OnDelete:CASCADE"`
	Payments  []PaymentDTO  `gorm:"foreignKey:OrderUID;references:UID;constraint:OnDelete:CASCADE"`
	Events    []EventDTO    `gorm:"foreignKey:OrderUID;references:UID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ShipmentDTO is one order_shipments row. Position keeps the order shipments were added in.
type ShipmentDTO struct {
	GUID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderUID         int64           `gorm:"index;not null"`
	Position         int             `gorm:"not null"`
	Number           string          `gorm:"size:64;uniqueIndex;not null"`
	Kind             int             `gorm:"not null"`
	Status           int             `gorm:"index;not null"`
	Taxes            []TaxValueDTO   `gorm:"serializer:json"`
	TaxInclusive     bool            `gorm:"not null"`
	ShippingCost     decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	ShippingTax      decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	SubtotalDiscount decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	TrackingCode     string          `gorm:"size:255"`
	CreatedAt        time.Time
	ShippedAt        *time.Time

	Skus []OrderSkuDTO `gorm:"foreignKey:ShipmentGUID;references:GUID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "order_shipments"
}

// TaxValueDTO is stored as JSON on the shipment row.
type TaxValueDTO struct {
	Category    string          `json:"category"`
	DisplayName string          `json:"displayName"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderSkuDTO is one order_skus row. OrderUID is denormalised so a whole order's lines can be
// replaced in one statement.
type OrderSkuDTO struct {
	GUID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShipmentGUID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	OrderUID               int64           `gorm:"index;not null"`
	Position               int             `gorm:"not null"`
	SkuGUID                uuid.UUID       `gorm:"type:uuid;index;not null"`
	SkuCode                string          `gorm:"size:255;not null"`
	Quantity               int             `gorm:"not null"`
	AllocatedQuantity      int             `gorm:"not null"`
	StockQuantity          int             `gorm:"not null"`
	PreOrBackOrderQuantity int             `gorm:"not null;default:0"`
	UnitPrice              decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	Tax                    decimal.Decimal `gorm:"type:numeric(19,4);not null"`
}

func (OrderSkuDTO) TableName() string {
	return "order_skus"
}

type PaymentDTO struct {
	GUID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderUID       int64           `gorm:"index;not null"`
	Type           int             `gorm:"not null"`
	Status         int             `gorm:"not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	ShipmentNumber string          `gorm:"size:64"`
	CreatedAt      time.Time
}

func (PaymentDTO) TableName() string {
	return "order_payments"
}

// EventDTO is one history entry. Entries are only appended, so (order, position) is stable.
type EventDTO struct {
	OrderUID  int64  `gorm:"primaryKey;autoIncrement:false"`
	Position  int    `gorm:"primaryKey;autoIncrement:false"`
	Title     string `gorm:"size:255;not null"`
	Note      string `gorm:"type:text"`
	CreatedAt time.Time
}

func (EventDTO) TableName() string {
	return "order_events"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		UID:          o.UID(),
		GUID:         o.GUID().Bytes(),
		Status:       int(o.Status()),
		Currency:     o.Currency().Code(),
		Locale:       o.Locale().String(),
		StoreCode:    o.StoreCode(),
		CustomerRef:  o.CustomerRef(),
		ReturnCodes:  o.ReturnCodes(),
		Fields:       o.FieldValues(),
		CreatedAt:    o.CreatedAt(),
		LastModified: o.LastModified(),
		Version:      o.Version(),
	}

	for i, s := range o.Shipments() {
		dto.Shipments = append(dto.Shipments, shipmentFromDomain(o.UID(), i, s))
	}
	for _, p := range o.Payments() {
		dto.Payments = append(dto.Payments, PaymentDTO{
			GUID:           p.GUID.Bytes(),
			OrderUID:       o.UID(),
			Type:           int(p.Type),
			Status:         int(p.Status),
			Amount:         p.Amount.Amount(),
			ShipmentNumber: p.ShipmentNumber,
			CreatedAt:      p.CreatedAt,
		})
	}
	for i, e := range o.Events() {
		dto.Events = append(dto.Events, EventDTO{
			OrderUID:  o.UID(),
			Position:  i,
			Title:     e.Title,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return dto
}

func shipmentFromDomain(orderUID int64, position int, s *order.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		GUID:             s.GUID().Bytes(),
		OrderUID:         orderUID,
		Position:         position,
		Number:           s.Number(),
		Kind:             int(s.Kind()),
		Status:           int(s.StoredStatus()),
		TaxInclusive:     s.TaxInclusive(),
		ShippingCost:     s.ShippingCost().Amount(),
		ShippingTax:      s.ShippingTax().Amount(),
		SubtotalDiscount: s.SubtotalDiscount().Amount(),
		TrackingCode:     s.TrackingCode(),
		CreatedAt:        s.CreatedAt(),
		ShippedAt:        s.ShippedAt(),
	}
	for _, tv := range s.TaxValues() {
		dto.Taxes = append(dto.Taxes, TaxValueDTO(tv))
	}
	for i, sku := range s.Skus() {
		dto.Skus = append(dto.Skus, OrderSkuDTO{
			GUID:                   sku.GUID().Bytes(),
			ShipmentGUID:           s.GUID().Bytes(),
			OrderUID:               orderUID,
			Position:               i,
			SkuGUID:                sku.SkuGUID().Bytes(),
			SkuCode:                sku.SkuCode(),
			Quantity:               sku.Quantity(),
			AllocatedQuantity:      sku.AllocatedQuantity(),
			StockQuantity:          sku.StockQuantity(),
			PreOrBackOrderQuantity: sku.PreOrBackOrderQuantity(),
			UnitPrice:              sku.UnitPrice().Amount(),
			Tax:                    sku.Tax().Amount(),
		})
	}
	return dto
}

// toDomain rebuilds the aggregate; children must already be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	guid, err := kernel.UUIDFromBytes(dto.GUID[:])
	if err != nil {
		return nil, err
	}
	cur, err := kernel.ParseCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}
	locale, err := kernel.ParseLocale(dto.Locale)
	if err != nil {
		return nil, err
	}

	state := order.OrderState{
		UID:          dto.UID,
		GUID:         guid,
		Status:       order.Status(dto.Status),
		Currency:     cur,
		Locale:       locale,
		StoreCode:    dto.StoreCode,
		CustomerRef:  dto.CustomerRef,
		ReturnCodes:  dto.ReturnCodes,
		Fields:       dto.Fields,
		CreatedAt:    dto.CreatedAt,
		LastModified: dto.LastModified,
		Version:      dto.Version,
	}

	for _, sDTO := range dto.Shipments {
		ss, shipmentErr := shipmentToState(cur, sDTO)
		if shipmentErr != nil {
			return nil, shipmentErr
		}
		state.Shipments = append(state.Shipments, ss)
	}
	for _, pDTO := range dto.Payments {
		id, idErr := kernel.UUIDFromBytes(pDTO.GUID[:])
		if idErr != nil {
			return nil, idErr
		}
		state.Payments = append(state.Payments, order.Payment{
			GUID:           id,
			Type:           order.PaymentType(pDTO.Type),
			Status:         order.PaymentStatus(pDTO.Status),
			Amount:         cur.Amount(pDTO.Amount),
			ShipmentNumber: pDTO.ShipmentNumber,
			CreatedAt:      pDTO.CreatedAt,
		})
	}
	for _, eDTO := range dto.Events {
		state.Events = append(state.Events, order.Event{
			Title:     eDTO.Title,
			Note:      eDTO.Note,
			CreatedAt: eDTO.CreatedAt,
		})
	}

	return order.RestoreOrder(state)
}

func shipmentToState(cur kernel.Currency, dto ShipmentDTO) (order.ShipmentState, error) {
	guid, err := kernel.UUIDFromBytes(dto.GUID[:])
	if err != nil {
		return order.ShipmentState{}, err
	}

	state := order.ShipmentState{
		GUID:             guid,
		Number:           dto.Number,
		Kind:             order.Kind(dto.Kind),
		Status:           order.ShipmentStatus(dto.Status),
		TaxInclusive:     dto.TaxInclusive,
		ShippingCost:     cur.Amount(dto.ShippingCost),
		ShippingTax:      cur.Amount(dto.ShippingTax),
		SubtotalDiscount: cur.Amount(dto.SubtotalDiscount),
		TrackingCode:     dto.TrackingCode,
		CreatedAt:        dto.CreatedAt,
		ShippedAt:        dto.ShippedAt,
	}
	for _, tv := range dto.Taxes {
		state.Taxes = append(state.Taxes, order.TaxValue(tv))
	}

	for _, skuDTO := range dto.Skus {
		id, idErr := kernel.UUIDFromBytes(skuDTO.GUID[:])
		if idErr != nil {
			return order.ShipmentState{}, idErr
		}
		skuGUID, idErr := kernel.UUIDFromBytes(skuDTO.SkuGUID[:])
		if idErr != nil {
			return order.ShipmentState{}, idErr
		}
		sku, skuErr := order.RestoreOrderSku(
			id, skuGUID, skuDTO.SkuCode,
			skuDTO.Quantity, skuDTO.AllocatedQuantity, skuDTO.StockQuantity, skuDTO.PreOrBackOrderQuantity,
			cur.Amount(skuDTO.UnitPrice), cur.Amount(skuDTO.Tax),
		)
		if skuErr != nil {
			return order.ShipmentState{}, skuErr
		}
		state.Skus = append(state.Skus, sku)
	}
	return state, nil
}

// Models lists the tables of the order aggregate in migration order.
func Models() []any {
	return []any{&OrderDTO{}, &ShipmentDTO{}, &OrderSkuDTO{}, &PaymentDTO{}, &EventDTO{}}
}
