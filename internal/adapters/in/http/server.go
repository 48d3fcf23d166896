package http

import (
	"log/slog"
	"net/http"
	"time"

	"commerce/internal/core/application/storectx"
	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/application/usecases/queries"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/domain/model/orderreturn"
	"commerce/internal/generated/servers"
	"commerce/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Order command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	addShipmentHandler       commands.AddShipmentCommandHandler
	holdOrderHandler         commands.HoldOrderCommandHandler
	releaseOrderHandler      commands.ReleaseOrderCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	failOrderHandler         commands.FailOrderCommandHandler
	allocateInventoryHandler commands.AllocateInventoryCommandHandler
	releaseShipmentHandler   commands.ReleaseShipmentCommandHandler
	shipShipmentHandler      commands.ShipShipmentCommandHandler
	recalculateTaxesHandler  commands.RecalculateShipmentTaxesCommandHandler

	// Return command handlers
	createReturnHandler  commands.CreateReturnCommandHandler
	receiveReturnHandler commands.ReceiveReturnCommandHandler
	finishReturnHandler  commands.FinishReturnCommandHandler

	// Lock command handlers
	obtainOrderLockHandler  commands.ObtainOrderLockCommandHandler
	releaseOrderLockHandler commands.ReleaseOrderLockCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	validateOrderLockHandler queries.ValidateOrderLockQueryHandler

	logger *slog.Logger
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	AddShipment       commands.AddShipmentCommandHandler
	HoldOrder         commands.HoldOrderCommandHandler
	ReleaseOrder      commands.ReleaseOrderCommandHandler
	CancelOrder       commands.CancelOrderCommandHandler
	FailOrder         commands.FailOrderCommandHandler
	AllocateInventory commands.AllocateInventoryCommandHandler
	ReleaseShipment   commands.ReleaseShipmentCommandHandler
	ShipShipment      commands.ShipShipmentCommandHandler
	RecalculateTaxes  commands.RecalculateShipmentTaxesCommandHandler
	CreateReturn      commands.CreateReturnCommandHandler
	ReceiveReturn     commands.ReceiveReturnCommandHandler
	FinishReturn      commands.FinishReturnCommandHandler
	ObtainOrderLock   commands.ObtainOrderLockCommandHandler
	ReleaseOrderLock  commands.ReleaseOrderLockCommandHandler
	GetOrder          queries.GetOrderQueryHandler
	ValidateOrderLock queries.ValidateOrderLockQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		createOrderHandler:       handlers.CreateOrder,
		addShipmentHandler:       handlers.AddShipment,
		holdOrderHandler:         handlers.HoldOrder,
		releaseOrderHandler:      handlers.ReleaseOrder,
		cancelOrderHandler:       handlers.CancelOrder,
		failOrderHandler:         handlers.FailOrder,
		allocateInventoryHandler: handlers.AllocateInventory,
		releaseShipmentHandler:   handlers.ReleaseShipment,
		shipShipmentHandler:      handlers.ShipShipment,
		recalculateTaxesHandler:  handlers.RecalculateTaxes,
		createReturnHandler:      handlers.CreateReturn,
		receiveReturnHandler:     handlers.ReceiveReturn,
		finishReturnHandler:      handlers.FinishReturn,
		obtainOrderLockHandler:   handlers.ObtainOrderLock,
		releaseOrderLockHandler:  handlers.ReleaseOrderLock,
		getOrderHandler:          handlers.GetOrder,
		validateOrderLockHandler: handlers.ValidateOrderLock,
		logger:                   logger.With("component", "http"),
	}
}

// CreateOrder handles POST /api/v1/orders. The store code comes from the body or, when
// absent, from the X-Store-Code header bound to the request context.
func (s *Server) CreateOrder(ctx echo.Context, _ servers.CreateOrderParams) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}
	reqCtx := ctx.Request().Context()

	orderNumber := kernel.NewUUID()
	if body.OrderNumber != nil {
		var err error
		if orderNumber, err = kernel.UUIDFromBytes(body.OrderNumber[:]); err != nil {
			return s.respondError(ctx, err)
		}
	}

	storeCode := deref(body.StoreCode)
	if storeCode == "" {
		var err error
		if storeCode, err = storectx.StoreCode(reqCtx); err != nil {
			return s.respondError(ctx, err)
		}
	}

	shipments := make([]commands.ShipmentRequest, 0, len(body.Shipments))
	for _, sh := range body.Shipments {
		request, err := toShipmentRequest(sh)
		if err != nil {
			return s.respondError(ctx, err)
		}
		shipments = append(shipments, request)
	}

	cmd, err := commands.NewCreateOrderCommand(orderNumber, storeCode, body.CustomerRef,
		deref(body.Currency), deref(body.Locale), shipments)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.createOrderHandler.Handle(reqCtx, cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.OrderCreated{OrderNumber: orderNumber.String()})
}

// GetOrder handles GET /api/v1/orders/{orderNumber}.
func (s *Server) GetOrder(ctx echo.Context, orderNumber servers.OrderNumber) error {
	query, err := queries.NewGetOrderQuery(orderNumber.String())
	if err != nil {
		return s.respondError(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(view))
}

// AddShipment handles POST /api/v1/orders/{orderNumber}/shipments.
func (s *Server) AddShipment(ctx echo.Context, orderNumber servers.OrderNumber) error {
	var body servers.NewShipment
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	number, err := kernel.UUIDFromBytes(orderNumber[:])
	if err != nil {
		return s.respondError(ctx, err)
	}
	request, err := toShipmentRequest(body)
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewAddShipmentCommand(number, request)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.addShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// HoldOrder handles POST /api/v1/orders/{orderNumber}/hold.
func (s *Server) HoldOrder(ctx echo.Context, orderNumber servers.OrderNumber) error {
	number, err := kernel.UUIDFromBytes(orderNumber[:])
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewHoldOrderCommand(number)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.holdOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseOrder handles POST /api/v1/orders/{orderNumber}/release.
func (s *Server) ReleaseOrder(ctx echo.Context, orderNumber servers.OrderNumber) error {
	number, err := kernel.UUIDFromBytes(orderNumber[:])
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewReleaseOrderCommand(number)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.releaseOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderNumber}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderNumber servers.OrderNumber) error {
	number, err := kernel.UUIDFromBytes(orderNumber[:])
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewCancelOrderCommand(number)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// FailOrder handles POST /api/v1/orders/{orderNumber}/fail.
func (s *Server) FailOrder(ctx echo.Context, orderNumber servers.OrderNumber) error {
	number, err := kernel.UUIDFromBytes(orderNumber[:])
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewFailOrderCommand(number)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.failOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AllocateInventory handles POST /api/v1/orders/{orderNumber}/allocate.
func (s *Server) AllocateInventory(ctx echo.Context, orderNumber servers.OrderNumber) error {
	number, err := kernel.UUIDFromBytes(orderNumber[:])
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewAllocateInventoryCommand(number)
	if err != nil {
		return s.respondError(ctx, err)
	}
	allocation, err := s.allocateInventoryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Allocation{
		AllocatedLines: allocation.AllocatedLines,
		PendingLines:   allocation.PendingLines,
	})
}

// ReleaseShipment handles POST /api/v1/orders/{orderNumber}/shipments/{shipmentNumber}/release.
func (s *Server) ReleaseShipment(
	ctx echo.Context,
	orderNumber servers.OrderNumber,
	shipmentNumber servers.ShipmentNumber,
) error {
	number, err := kernel.UUIDFromBytes(orderNumber[:])
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewReleaseShipmentCommand(number, shipmentNumber)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.releaseShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ShipShipment handles POST /api/v1/orders/{orderNumber}/shipments/{shipmentNumber}/ship.
func (s *Server) ShipShipment(
	ctx echo.Context,
	orderNumber servers.OrderNumber,
	shipmentNumber servers.ShipmentNumber,
) error {
	var body servers.ShipRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	number, err := kernel.UUIDFromBytes(orderNumber[:])
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewShipShipmentCommand(number, shipmentNumber, deref(body.TrackingCode))
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.shipShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RecalculateShipmentTaxes handles PUT /api/v1/orders/{orderNumber}/shipments/{shipmentNumber}/taxes.
func (s *Server) RecalculateShipmentTaxes(
	ctx echo.Context,
	orderNumber servers.OrderNumber,
	shipmentNumber servers.ShipmentNumber,
) error {
	var body servers.ShipmentTaxes
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	number, err := kernel.UUIDFromBytes(orderNumber[:])
	if err != nil {
		return s.respondError(ctx, err)
	}
	result, err := toTaxResult(body)
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewRecalculateShipmentTaxesCommand(number, shipmentNumber, result)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.recalculateTaxesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateReturn handles POST /api/v1/orders/{orderNumber}/returns. The authenticated user, if
// any, is recorded as the creator.
func (s *Server) CreateReturn(ctx echo.Context, orderNumber servers.OrderNumber) error {
	var body servers.NewReturn
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	number, err := kernel.UUIDFromBytes(orderNumber[:])
	if err != nil {
		return s.respondError(ctx, err)
	}
	returnType, err := orderreturn.ParseType(string(body.Type))
	if err != nil {
		return s.respondError(ctx, err)
	}

	lines := make([]commands.ReturnLineRequest, 0, len(body.Lines))
	for _, line := range body.Lines {
		skuGUID, guidErr := kernel.UUIDFromBytes(line.OrderSkuGuid[:])
		if guidErr != nil {
			return s.respondError(ctx, guidErr)
		}
		lines = append(lines, commands.ReturnLineRequest{
			OrderSkuGUID: skuGUID,
			Quantity:     line.Quantity,
			Reason:       deref(line.Reason),
		})
	}

	adjustments, err := toReturnAdjustments(body)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var exchangeOrder *kernel.UUID
	if body.ExchangeOrderNumber != nil {
		exchange, exchangeErr := kernel.UUIDFromBytes(body.ExchangeOrderNumber[:])
		if exchangeErr != nil {
			return s.respondError(ctx, exchangeErr)
		}
		exchangeOrder = &exchange
	}

	physical := body.PhysicalReturn == nil || *body.PhysicalReturn
	cmd, err := commands.NewCreateReturnCommand(body.RmaCode, returnType, number, body.ShipmentNumber,
		physical, UserID(ctx.Request().Context()), lines, adjustments, exchangeOrder)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.createReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ReceiveReturn handles POST /api/v1/returns/{rmaCode}/receive.
func (s *Server) ReceiveReturn(ctx echo.Context, rmaCode servers.RmaCode) error {
	var body servers.ReceiveReturn
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	lines := make([]commands.ReceiveLineRequest, 0, len(body.Lines))
	for _, line := range body.Lines {
		skuGUID, err := kernel.UUIDFromBytes(line.ReturnSkuGuid[:])
		if err != nil {
			return s.respondError(ctx, err)
		}
		lines = append(lines, commands.ReceiveLineRequest{ReturnSkuGUID: skuGUID, Quantity: line.Quantity})
	}

	cmd, err := commands.NewReceiveReturnCommand(rmaCode, UserID(ctx.Request().Context()), lines)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.receiveReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteReturn handles POST /api/v1/returns/{rmaCode}/complete.
func (s *Server) CompleteReturn(ctx echo.Context, rmaCode servers.RmaCode) error {
	cmd, err := commands.NewCompleteReturnCommand(rmaCode)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.finishReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelReturn handles POST /api/v1/returns/{rmaCode}/cancel.
func (s *Server) CancelReturn(ctx echo.Context, rmaCode servers.RmaCode) error {
	cmd, err := commands.NewCancelReturnCommand(rmaCode)
	if err != nil {
		return s.respondError(ctx, err)
	}
	if err = s.finishReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ObtainOrderLock handles POST /api/v1/orders/{orderNumber}/lock for the authenticated user.
func (s *Server) ObtainOrderLock(ctx echo.Context, orderNumber servers.OrderNumber) error {
	userID := UserID(ctx.Request().Context())
	if userID == "" {
		return unauthorized(ctx)
	}

	var body servers.ObtainLock
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	number, err := kernel.UUIDFromBytes(orderNumber[:])
	if err != nil {
		return s.respondError(ctx, err)
	}
	cmd, err := commands.NewObtainOrderLockCommand(number, userID, body.OpenedAt)
	if err != nil {
		return s.respondError(ctx, err)
	}
	lock, err := s.obtainOrderLockHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.OrderLock{
		OrderNumber: lock.OrderNumber(),
		OwnerId:     lock.OwnerID(),
		CreatedAt:   lock.CreatedAt(),
	})
}

// ReleaseOrderLock handles DELETE /api/v1/orders/{orderNumber}/lock. A forced release
// ignores the owner.
func (s *Server) ReleaseOrderLock(
	ctx echo.Context,
	orderNumber servers.OrderNumber,
	params servers.ReleaseOrderLockParams,
) error {
	number, err := kernel.UUIDFromBytes(orderNumber[:])
	if err != nil {
		return s.respondError(ctx, err)
	}

	var cmd commands.ReleaseOrderLockCommand
	if params.Force != nil && *params.Force {
		cmd, err = commands.NewForceReleaseOrderLockCommand(number)
	} else {
		userID := UserID(ctx.Request().Context())
		if userID == "" {
			return unauthorized(ctx)
		}
		cmd, err = commands.NewReleaseOrderLockCommand(number, userID)
	}
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.releaseOrderLockHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ValidateOrderLock handles GET /api/v1/orders/{orderNumber}/lock/validate.
func (s *Server) ValidateOrderLock(
	ctx echo.Context,
	orderNumber servers.OrderNumber,
	params servers.ValidateOrderLockParams,
) error {
	userID := UserID(ctx.Request().Context())
	if userID == "" {
		return unauthorized(ctx)
	}

	var lockCreatedAt time.Time
	if params.LockCreatedAt != nil {
		lockCreatedAt = *params.LockCreatedAt
	}
	query, err := queries.NewValidateOrderLockQuery(orderNumber.String(), userID, lockCreatedAt, params.OpenedAt)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.validateOrderLockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.LockValidation{Result: result.Result, Success: result.Success})
}

func toShipmentRequest(sh servers.NewShipment) (commands.ShipmentRequest, error) {
	kind, err := order.ParseKind(string(sh.Kind))
	if err != nil {
		return commands.ShipmentRequest{}, err
	}

	lines := make([]commands.LineRequest, 0, len(sh.Lines))
	for _, line := range sh.Lines {
		skuGUID, guidErr := kernel.UUIDFromBytes(line.SkuGuid[:])
		if guidErr != nil {
			return commands.ShipmentRequest{}, guidErr
		}
		price, priceErr := decimal.NewFromString(line.UnitPrice)
		if priceErr != nil {
			return commands.ShipmentRequest{}, errs.NewValueIsInvalidErrorWithCause("unit price", priceErr)
		}
		lines = append(lines, commands.LineRequest{SkuGUID: skuGUID, Quantity: line.Quantity, UnitPrice: price})
	}

	return commands.ShipmentRequest{Kind: kind, Lines: lines}, nil
}

func toTaxResult(body servers.ShipmentTaxes) (order.TaxResult, error) {
	values := make([]order.TaxValue, 0, len(body.Values))
	for _, v := range body.Values {
		rate, err := decimal.NewFromString(v.Rate)
		if err != nil {
			return order.TaxResult{}, errs.NewValueIsInvalidErrorWithCause("tax rate", err)
		}
		amount, err := decimal.NewFromString(v.Amount)
		if err != nil {
			return order.TaxResult{}, errs.NewValueIsInvalidErrorWithCause("tax amount", err)
		}
		values = append(values, order.TaxValue{
			Category:    v.Category,
			DisplayName: deref(v.DisplayName),
			Rate:        rate,
			Amount:      amount,
		})
	}

	var itemTaxes map[string]decimal.Decimal
	if body.ItemTaxes != nil {
		itemTaxes = make(map[string]decimal.Decimal, len(*body.ItemTaxes))
		for guid, value := range *body.ItemTaxes {
			tax, err := decimal.NewFromString(value)
			if err != nil {
				return order.TaxResult{}, errs.NewValueIsInvalidErrorWithCause("item tax", err)
			}
			itemTaxes[guid] = tax
		}
	}

	shippingTax, err := parseAmount("shipping tax", body.ShippingTax)
	if err != nil {
		return order.TaxResult{}, err
	}

	return order.TaxResult{
		Inclusive:   body.Inclusive != nil && *body.Inclusive,
		Values:      values,
		ItemTaxes:   itemTaxes,
		ShippingTax: shippingTax,
	}, nil
}

func toReturnAdjustments(body servers.NewReturn) (commands.ReturnAdjustments, error) {
	shippingCost, err := parseAmount("shipping cost", body.ShippingCost)
	if err != nil {
		return commands.ReturnAdjustments{}, err
	}
	discount, err := parseAmount("shipment discount", body.ShipmentDiscount)
	if err != nil {
		return commands.ReturnAdjustments{}, err
	}
	restock, err := parseAmount("less restock amount", body.LessRestockAmount)
	if err != nil {
		return commands.ReturnAdjustments{}, err
	}
	return commands.ReturnAdjustments{
		ShippingCost:      shippingCost,
		ShipmentDiscount:  discount,
		LessRestockAmount: restock,
	}, nil
}

func parseAmount(name string, value *string) (decimal.Decimal, error) {
	if value == nil || *value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(*value)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return amount, nil
}

func toOrderResponse(view queries.GetOrderQueryResponse) servers.Order {
	shipments := make([]servers.Shipment, len(view.Shipments))
	for i, sh := range view.Shipments {
		lines := make([]servers.OrderLine, len(sh.Lines))
		for j, line := range sh.Lines {
			lines[j] = servers.OrderLine{
				SkuCode:           line.SkuCode,
				Quantity:          line.Quantity,
				AllocatedQuantity: line.AllocatedQuantity,
				UnitPrice:         line.UnitPrice.String(),
				Tax:               line.Tax.String(),
			}
		}

		var trackingCode *string
		if sh.TrackingCode != "" {
			code := sh.TrackingCode
			trackingCode = &code
		}
		shipments[i] = servers.Shipment{
			ShipmentNumber: sh.Number,
			Kind:           sh.Kind,
			Status:         sh.Status,
			TrackingCode:   trackingCode,
			ShippingCost:   sh.ShippingCost.String(),
			Lines:          lines,
		}
	}

	return servers.Order{
		OrderNumber:  view.Number,
		Status:       view.Status,
		StoreCode:    view.StoreCode,
		CustomerRef:  view.CustomerRef,
		Currency:     view.Currency,
		Locale:       view.Locale,
		CreatedAt:    view.CreatedAt,
		LastModified: view.LastModified,
		Version:      view.Version,
		Shipments:    shipments,
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
