package queries

import (
	"errors"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery reads one order with its shipments and lines for display.
type GetOrderQuery struct {
	orderNumber kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderNumber string) (GetOrderQuery, error) {
	number, err := kernel.UUIDFromString(orderNumber)
	if err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderNumber: number, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderNumber() kernel.UUID { return q.orderNumber }

type GetOrderQueryResponse struct {
	Number       string
	Status       string
	StoreCode    string
	CustomerRef  string
	Currency     string
	Locale       string
	CreatedAt    time.Time
	LastModified time.Time
	Version      int64
	Shipments    []ShipmentView
}

// ShipmentView reports the effective shipment status, so shipments of an order on hold show ONHOLD.
type ShipmentView struct {
	Number       string
	Kind         string
	Status       string
	TrackingCode string
	ShippingCost decimal.Decimal
	Lines        []OrderLineView
}

type OrderLineView struct {
	SkuCode           string
	Quantity          int
	AllocatedQuantity int
	UnitPrice         decimal.Decimal
	Tax               decimal.Decimal
}
