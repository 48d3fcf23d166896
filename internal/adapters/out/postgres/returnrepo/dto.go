// Package returnrepo persists returns and exchanges in order_returns and order_return_skus.
package returnrepo

import (
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/model/orderreturn"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReturnDTO struct {
	UID                 int64               `gorm:"primaryKey;autoIncrement"`
	RMACode             string              `gorm:"column:rma_code;size:64;uniqueIndex;not null"`
	Type                int                 `gorm:"not null"`
	Status              int                 `gorm:"index;not null"`
	OrderNumber         string              `gorm:"size:64;index;not null"`
	ShipmentNumber      string              `gorm:"size:64;not null"`
	Currency            string              `gorm:"size:3;not null"`
	PhysicalReturn      bool                `gorm:"not null"`
	Comment             string              `gorm:"type:text"`
	CreatedBy           string              `gorm:"size:255"`
	ReceivedBy          string              `gorm:"size:255"`
	Taxes               []TaxValueDTO       `gorm:"serializer:json"`
	ShippingCost        decimal.Decimal     `gorm:"type:numeric(19,4);not null"`
	ShippingTax         decimal.Decimal     `gorm:"type:numeric(19,4);not null"`
	ShipmentDiscount    decimal.Decimal     `gorm:"type:numeric(19,4);not null"`
	LessRestockAmount   decimal.Decimal     `gorm:"type:numeric(19,4);not null"`
	TaxInclusive        bool                `gorm:"not null"`
	ExchangeOrderNumber string              `gorm:"size:64"`
	ExchangeOrderTotal  decimal.NullDecimal `gorm:"type:numeric(19,4)"`
	CreatedAt           time.Time
	LastModified        time.Time
	Version             int64

	Skus []ReturnSkuDTO `gorm:"foreignKey:ReturnUID;references:UID;constraint:OnDelete:CASCADE"`
}

func (ReturnDTO) TableName() string {
	return "order_returns"
}

type TaxValueDTO struct {
	Category    string          `json:"category"`
	DisplayName string          `json:"displayName"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

type ReturnSkuDTO struct {
	GUID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ReturnUID        int64           `gorm:"index;not null"`
	Position         int             `gorm:"not null"`
	OrderSkuGUID     uuid.UUID       `gorm:"type:uuid;not null"`
	SkuCode          string          `gorm:"size:255;not null"`
	OrderedQuantity  int             `gorm:"not null"`
	Quantity         int             `gorm:"not null"`
	ReceivedQuantity int             `gorm:"not null"`
	UnitPrice        decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	Tax              decimal.Decimal `gorm:"type:numeric(19,4);not null"`
	Reason           string          `gorm:"size:255"`
}

func (ReturnSkuDTO) TableName() string {
	return "order_return_skus"
}

// Models lists the return tables in migration order.
func Models() []any {
	return []any{&ReturnDTO{}, &ReturnSkuDTO{}}
}

func fromDomain(r *orderreturn.OrderReturn) ReturnDTO {
	dto := ReturnDTO{
		UID:                 r.UID(),
		RMACode:             r.RMACode(),
		Type:                int(r.Type()),
		Status:              int(r.Status()),
		OrderNumber:         r.OrderNumber(),
		ShipmentNumber:      r.ShipmentNumber(),
		Currency:            r.Currency().Code(),
		PhysicalReturn:      r.PhysicalReturn(),
		Comment:             r.Comment(),
		CreatedBy:           r.CreatedBy(),
		ReceivedBy:          r.ReceivedBy(),
		ShippingCost:        r.ShippingCost().Amount(),
		ShippingTax:         r.ShippingTax().Amount(),
		ShipmentDiscount:    r.ShipmentDiscount().Amount(),
		LessRestockAmount:   r.LessRestockAmount().Amount(),
		TaxInclusive:        r.TaxInclusive(),
		ExchangeOrderNumber: r.ExchangeOrderNumber(),
		CreatedAt:           r.CreatedAt(),
		LastModified:        r.LastModified(),
		Version:             r.Version(),
	}
	if total := r.ExchangeOrderTotal(); total != nil {
		dto.ExchangeOrderTotal = decimal.NewNullDecimal(total.Amount())
	}
	for _, tv := range r.TaxValues() {
		dto.Taxes = append(dto.Taxes, TaxValueDTO(tv))
	}
	for i, s := range r.Skus() {
		dto.Skus = append(dto.Skus, ReturnSkuDTO{
			GUID:             s.GUID().Bytes(),
			ReturnUID:        r.UID(),
			Position:         i,
			OrderSkuGUID:     s.OrderSkuGUID().Bytes(),
			SkuCode:          s.SkuCode(),
			OrderedQuantity:  s.OrderedQuantity(),
			Quantity:         s.Quantity(),
			ReceivedQuantity: s.ReceivedQuantity(),
			UnitPrice:        s.UnitPrice().Amount(),
			Tax:              s.Tax().Amount(),
			Reason:           s.Reason(),
		})
	}
	return dto
}

func toDomain(dto ReturnDTO) (*orderreturn.OrderReturn, error) {
	cur, err := kernel.ParseCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}

	state := orderreturn.State{
		UID:                 dto.UID,
		RMACode:             dto.RMACode,
		Type:                orderreturn.Type(dto.Type),
		Status:              orderreturn.Status(dto.Status),
		OrderNumber:         dto.OrderNumber,
		ShipmentNumber:      dto.ShipmentNumber,
		Currency:            cur,
		PhysicalReturn:      dto.PhysicalReturn,
		Comment:             dto.Comment,
		CreatedBy:           dto.CreatedBy,
		ReceivedBy:          dto.ReceivedBy,
		ShippingCost:        cur.Amount(dto.ShippingCost),
		ShippingTax:         cur.Amount(dto.ShippingTax),
		ShipmentDiscount:    cur.Amount(dto.ShipmentDiscount),
		LessRestockAmount:   cur.Amount(dto.LessRestockAmount),
		TaxInclusive:        dto.TaxInclusive,
		ExchangeOrderNumber: dto.ExchangeOrderNumber,
		CreatedAt:           dto.CreatedAt,
		LastModified:        dto.LastModified,
		Version:             dto.Version,
	}
	if dto.ExchangeOrderTotal.Valid {
		total := cur.Amount(dto.ExchangeOrderTotal.Decimal)
		state.ExchangeOrderTotal = &total
	}
	for _, tv := range dto.Taxes {
		state.Taxes = append(state.Taxes, order.TaxValue(tv))
	}
	for _, s := range dto.Skus {
		guid, idErr := kernel.UUIDFromBytes(s.GUID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderSkuGUID, idErr := kernel.UUIDFromBytes(s.OrderSkuGUID[:])
		if idErr != nil {
			return nil, idErr
		}
		state.Skus = append(state.Skus, orderreturn.ReturnSkuState{
			GUID:             guid,
			OrderSkuGUID:     orderSkuGUID,
			SkuCode:          s.SkuCode,
			OrderedQuantity:  s.OrderedQuantity,
			Quantity:         s.Quantity,
			ReceivedQuantity: s.ReceivedQuantity,
			UnitPrice:        cur.Amount(s.UnitPrice),
			Tax:              cur.Amount(s.Tax),
			Reason:           s.Reason,
		})
	}

	return orderreturn.RestoreOrderReturn(state)
}
