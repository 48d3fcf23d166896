package queries_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/services"
	"commerce/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestGetOrderQueryHandler_MapsRowsToReadModel(t *testing.T) {
	db, mock := newMockDB(t)
	number := kernel.NewUUID()
	shipmentGUID := kernel.NewUUID()
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{
			"uid", "status", "store_code", "customer_ref", "currency", "locale", "created_at", "last_modified", "version",
		}).AddRow(7, int(order.OnHold), "SNAPITUP", "customer-1", "USD", "en-US", created, created, 3))
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_shipments")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"guid", "number", "kind", "status", "tracking_code", "shipping_cost",
		}).
			AddRow(shipmentGUID.String(), "S-1", int(order.Physical), int(order.InventoryAssigned), "", "4.50").
			AddRow(kernel.NewUUID().String(), "S-2", int(order.Physical), int(order.Shipped), "TRK", "0"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM order_skus")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"shipment_guid", "sku_code", "quantity", "allocated_quantity", "unit_price", "tax",
		}).AddRow(shipmentGUID.String(), "SKU-1", 2, 2, "10.00", "1.30"))

	query, err := queries.NewGetOrderQuery(number.String())
	require.NoError(t, err)

	resp, err := queries.NewGetOrderQueryHandler(db).Handle(context.Background(), query)

	require.NoError(t, err)
	assert.Equal(t, number.String(), resp.Number)
	assert.Equal(t, "ONHOLD", resp.Status)
	assert.Equal(t, int64(3), resp.Version)
	require.Len(t, resp.Shipments, 2)
	assert.Equal(t, "ONHOLD", resp.Shipments[0].Status, "order hold overrides a non-terminal shipment")
	assert.Equal(t, "SHIPPED", resp.Shipments[1].Status)
	assert.Equal(t, "PHYSICAL", resp.Shipments[0].Kind)
	assert.Equal(t, "4.5", resp.Shipments[0].ShippingCost.String())
	require.Len(t, resp.Shipments[0].Lines, 1)
	assert.Equal(t, "SKU-1", resp.Shipments[0].Lines[0].SkuCode)
	assert.Empty(t, resp.Shipments[1].Lines)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderQueryHandler_UnknownOrder(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{"uid"}))

	query, err := queries.NewGetOrderQuery(kernel.NewUUID().String())
	require.NoError(t, err)

	_, err = queries.NewGetOrderQueryHandler(db).Handle(context.Background(), query)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetOrderQueryHandler_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).WillReturnError(boom)

	query, err := queries.NewGetOrderQuery(kernel.NewUUID().String())
	require.NoError(t, err)

	_, err = queries.NewGetOrderQueryHandler(db).Handle(context.Background(), query)

	assert.ErrorIs(t, err, boom)
}

func TestValidateOrderLockQueryHandler(t *testing.T) {
	number := kernel.NewUUID().String()
	lockCreated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	lastModified := lockCreated.Add(-time.Hour)

	tests := []struct {
		name          string
		presented     time.Time
		opened        time.Time
		row           []driver.Value
		wantResult    string
		wantSuccess   bool
		wantNotFound  bool
		omitOrderRows bool
	}{
		{
			name:        "same lock",
			presented:   lockCreated,
			opened:      lockCreated,
			row:         []driver.Value{lastModified, "csr-1", lockCreated},
			wantResult:  "VALIDATED_SUCCESSFULLY",
			wantSuccess: true,
		},
		{
			name:       "no presented lock",
			opened:     lockCreated,
			row:        []driver.Value{lastModified, "csr-1", lockCreated},
			wantResult: "ORDER_IS_LOCKED",
		},
		{
			name:       "lock released meanwhile",
			presented:  lockCreated,
			opened:     lockCreated,
			row:        []driver.Value{lastModified, nil, nil},
			wantResult: "ORDER_WAS_UNLOCKED",
		},
		{
			name:       "lock re-obtained",
			presented:  lockCreated,
			opened:     lockCreated,
			row:        []driver.Value{lastModified, "csr-2", lockCreated.Add(time.Minute)},
			wantResult: "LOCK_IS_ALIEN",
		},
		{
			name:       "order modified after editor opened",
			presented:  lockCreated,
			opened:     lastModified.Add(-time.Minute),
			row:        []driver.Value{lastModified, "csr-1", lockCreated},
			wantResult: "ORDER_WAS_MODIFIED",
		},
		{
			name:          "unknown order",
			presented:     lockCreated,
			opened:        lockCreated,
			omitOrderRows: true,
			wantNotFound:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			rows := sqlmock.NewRows([]string{"last_modified", "owner_id", "created_at"})
			if !tt.omitOrderRows {
				rows.AddRow(tt.row...)
			}
			mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN order_locks")).WillReturnRows(rows)

			query, err := queries.NewValidateOrderLockQuery(number, "csr-1", tt.presented, tt.opened)
			require.NoError(t, err)

			resp, err := queries.NewValidateOrderLockQueryHandler(db, services.NewOrderLockValidator()).
				Handle(context.Background(), query)

			if tt.wantNotFound {
				assert.ErrorIs(t, err, errs.ErrObjectNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, resp.Result)
			assert.Equal(t, tt.wantSuccess, resp.Success)
		})
	}
}
