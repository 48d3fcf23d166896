package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	httpadapter "commerce/internal/adapters/in/http"
	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/services"
	"commerce/internal/generated/servers"
	"commerce/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testSecret = []byte("test-secret")

func newTestRouter(t *testing.T, cfg httpadapter.RouterConfig) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpadapter.NewServer(httpadapter.Handlers{
		GetOrder:          queries.NewGetOrderQueryHandler(db),
		ValidateOrderLock: queries.NewValidateOrderLockQueryHandler(db, services.NewOrderLockValidator()),
	}, logger)

	if cfg.JWTSecret == nil {
		cfg.JWTSecret = testSecret
	}
	e, err := httpadapter.NewRouter(server, cfg, logger)
	require.NoError(t, err)
	return e, mock
}

func signedToken(t *testing.T, secret []byte, subject string) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)
	return token
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) servers.Error {
	t.Helper()

	var body servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	e, _ := newTestRouter(t, httpadapter.RouterConfig{})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestSwaggerDocument(t *testing.T) {
	e, _ := newTestRouter(t, httpadapter.RouterConfig{})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CreateOrder")
}

func TestGetOrder_UnknownOrderIsNotFound(t *testing.T) {
	e, mock := newTestRouter(t, httpadapter.RouterConfig{})
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{"uid"}))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decodeError(t, rec).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_MalformedOrderNumber(t *testing.T) {
	e, _ := newTestRouter(t, httpadapter.RouterConfig{})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_DatabaseErrorIsHidden(t *testing.T) {
	e, mock := newTestRouter(t, httpadapter.RouterConfig{})
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
		WillReturnError(errors.New("password authentication failed"))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestCreateOrder_RequestValidation(t *testing.T) {
	e, _ := newTestRouter(t, httpadapter.RouterConfig{})

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "missing shipments",
			body:       `{"customerRef":"customer-1"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown shipment kind",
			body:       `{"customerRef":"customer-1","shipments":[{"kind":"DRONE","lines":[]}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "no store code",
			body: fmt.Sprintf(
				`{"customerRef":"customer-1","shipments":[{"kind":"PHYSICAL","lines":[{"skuGuid":%q,"quantity":1,"unitPrice":"9.99"}]}]}`,
				kernel.NewUUID().String()),
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

			rec := serve(e, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestRecalculateShipmentTaxes_RequestValidation(t *testing.T) {
	e, _ := newTestRouter(t, httpadapter.RouterConfig{})
	path := "/api/v1/orders/" + kernel.NewUUID().String() + "/shipments/ORDER-1/taxes"

	tests := []struct {
		name string
		body string
	}{
		{name: "missing values", body: `{"shippingTax":"1.00"}`},
		{name: "malformed amount", body: `{"values":[{"category":"GST","rate":"0.05","amount":"lots"}]}`},
		{name: "empty category", body: `{"values":[{"category":"","rate":"0.05","amount":"1.00"}]}`},
		{name: "malformed item tax", body: `{"values":[],"itemTaxes":{"line-1":"1,00"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

			rec := serve(e, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestFailOrder_MalformedOrderNumber(t *testing.T) {
	e, _ := newTestRouter(t, httpadapter.RouterConfig{})

	rec := serve(e, httptest.NewRequest(http.MethodPost, "/api/v1/orders/not-a-uuid/fail", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestObtainOrderLock_RequiresIdentity(t *testing.T) {
	e, _ := newTestRouter(t, httpadapter.RouterConfig{})
	path := "/api/v1/orders/" + kernel.NewUUID().String() + "/lock"
	body := `{"openedAt":"2026-03-01T10:00:00Z"}`

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := serve(e, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, []byte("other"), "csr-1"))

		rec := serve(e, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestValidateOrderLock(t *testing.T) {
	e, mock := newTestRouter(t, httpadapter.RouterConfig{})
	lockCreated := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders o")).
		WillReturnRows(sqlmock.NewRows([]string{"last_modified", "owner_id", "created_at"}).
			AddRow(lockCreated.Add(-time.Hour), "csr-1", lockCreated))

	query := url.Values{}
	query.Set("lockCreatedAt", lockCreated.Format(time.RFC3339))
	query.Set("openedAt", lockCreated.Format(time.RFC3339))
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/lock/validate?"+query.Encode(), nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, testSecret, "csr-1"))

	rec := serve(e, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body servers.LockValidation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATED_SUCCESSFULLY", body.Result)
	assert.True(t, body.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimit(t *testing.T) {
	e, _ := newTestRouter(t, httpadapter.RouterConfig{RateLimitRPS: 0.001, RateLimitBurst: 1})

	first := serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))
	second := serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("order", "42"), http.StatusNotFound},
		{"required", errs.NewValueIsRequiredError("customer ref"), http.StatusBadRequest},
		{"invalid", errs.NewValueIsInvalidError("currency"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("quantity", 0, 1, 10), http.StatusBadRequest},
		{"joined validation", errors.Join(errs.NewValueIsRequiredError("a"), errs.NewValueIsInvalidError("b")),
			http.StatusBadRequest},
		{"no lines", commands.ErrShipmentHasNoLines, http.StatusBadRequest},
		{"not persisted", errs.NewOrderNotPersistedError("42"), http.StatusConflict},
		{"illegal return state", errs.NewIllegalReturnStateError("RMA-1", "COMPLETED"), http.StatusConflict},
		{"duplicate", errs.NewDuplicateOrderError("42", errors.New("23505")), http.StatusConflict},
		{"lock taken", commands.ErrOrderLockNotObtained, http.StatusConflict},
		{"foreign unlocker", errs.NewInvalidUnlockerError("42", "csr-1", "csr-2"), http.StatusForbidden},
		{"service", errs.NewServiceError("store code is not set"), http.StatusUnprocessableEntity},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httpadapter.StatusFor(tt.err))
		})
	}
}
