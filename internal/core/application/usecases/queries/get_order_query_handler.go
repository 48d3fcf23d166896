package queries

import (
	"context"

	"commerce/internal/core/domain/model/order"
	"commerce/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads orders straight from the order tables without loading the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError for an unknown order number. Shipments come back in the order
// they were added, lines in the order they were added to their shipment.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var (
		resp        GetOrderQueryResponse
		uid         int64
		orderStatus int
	)
	row := db.Raw(`
		SELECT
			uid,
			status,
			store_code,
			customer_ref,
			currency,
			locale,
			created_at,
			last_modified,
			version
		FROM orders
		WHERE guid = ?
	`, query.OrderNumber().Bytes()).Row()
	if err := row.Scan(
		&uid,
		&orderStatus,
		&resp.StoreCode,
		&resp.CustomerRef,
		&resp.Currency,
		&resp.Locale,
		&resp.CreatedAt,
		&resp.LastModified,
		&resp.Version,
	); err != nil {
		if isNoRows(err) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderNumber().String())
		}
		return GetOrderQueryResponse{}, err
	}
	resp.Number = query.OrderNumber().String()
	resp.Status = order.Status(orderStatus).String()

	shipments, err := h.shipments(db, uid, order.Status(orderStatus))
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Shipments = shipments
	return resp, nil
}

func (h GetOrderQueryHandler) shipments(
	db *gorm.DB,
	orderUID int64,
	orderStatus order.Status,
) ([]ShipmentView, error) {
	rows, err := db.Raw(`
		SELECT
			s.guid,
			s.number,
			s.kind,
			s.status,
			s.tracking_code,
			s.shipping_cost
		FROM order_shipments s
		WHERE s.order_uid = ?
		ORDER BY s.position
	`, orderUID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ShipmentView, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			view         ShipmentView
			guid         uuid.UUID
			kind, status int
		)
		if err = rows.Scan(&guid, &view.Number, &kind, &status, &view.TrackingCode, &view.ShippingCost); err != nil {
			return nil, err
		}
		view.Kind = order.Kind(kind).String()
		view.Status = order.EffectiveShipmentStatus(order.ShipmentStatus(status), orderStatus).String()
		view.Lines = make([]OrderLineView, 0)
		index[guid] = len(views)
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, h.attachLines(db, orderUID, views, index)
}

func (h GetOrderQueryHandler) attachLines(
	db *gorm.DB,
	orderUID int64,
	views []ShipmentView,
	index map[uuid.UUID]int,
) error {
	rows, err := db.Raw(`
		SELECT
			shipment_guid,
			sku_code,
			quantity,
			allocated_quantity,
			unit_price,
			tax
		FROM order_skus
		WHERE order_uid = ?
		ORDER BY position
	`, orderUID).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line         OrderLineView
			shipmentGUID uuid.UUID
			price, tax   decimal.Decimal
		)
		if err = rows.Scan(
			&shipmentGUID,
			&line.SkuCode,
			&line.Quantity,
			&line.AllocatedQuantity,
			&price,
			&tax,
		); err != nil {
			return err
		}
		line.UnitPrice = price
		line.Tax = tax
		if i, ok := index[shipmentGUID]; ok {
			views[i].Lines = append(views[i].Lines, line)
		}
	}
	return rows.Err()
}
