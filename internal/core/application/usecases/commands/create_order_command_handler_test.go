package commands_test

import (
	"errors"
	"testing"
	"time"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/order"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateOrderCommand(t *testing.T, skuGUID kernel.UUID, kind order.Kind) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), storeCode, "customer-1", "", "",
		[]commands.ShipmentRequest{{
			Kind:  kind,
			Lines: []commands.LineRequest{{SkuGUID: skuGUID, Quantity: 2, UnitPrice: decimal.RequireFromString("44.00")}},
		}})
	require.NoError(t, err)
	return cmd
}

func markPersisted(args mock.Arguments) {
	args.Get(1).(*order.Order).MarkPersisted(1, time.Now().UTC(), 1)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	sku := newProductSku(t, catalog.AvailableWhenInStock, true)
	cmd := newCreateOrderCommand(t, sku.GUID(), order.Physical)

	uow := newMockUoW()
	var placed *order.Order
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.Orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Run(markPersisted).Return(nil).Once(),
		uow.Skus.On("GetByGUIDs", ctx, []kernel.UUID{sku.GUID()}).
			Return(map[kernel.UUID]*catalog.ProductSku{sku.GUID(): sku}, nil).Once(),
		uow.Orders.On("Update", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { placed = args.Get(1).(*order.Order) }).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher := new(MockEventPublisher)
	publisher.expect(ports.EventOrderPlaced)

	h := commands.NewCreateOrderCommandHandler(fulfillmentUoWFactory{uow}, storeLookup(t), publisher, discard)
	require.NoError(t, h.Handle(ctx, cmd))

	uow.assertAll(t)
	publisher.AssertExpectations(t)
	require.NotNil(t, placed)
	assert.Equal(t, cmd.OrderNumber(), placed.GUID())
	assert.Equal(t, "USD", placed.Currency().Code())
	assert.Equal(t, order.Created, placed.Status())
	require.Len(t, placed.Shipments(), 1)
	assert.Equal(t, placed.Number()+"-1", placed.Shipments()[0].Number())
	assert.Equal(t, "USD 88.00", placed.Subtotal().String())
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateOrderCommandHandler(
		fulfillmentUoWFactory{newMockUoW()}, new(MockStoreLookup), new(MockEventPublisher), discard,
	)
	require.ErrorIs(t, h.Handle(t.Context(), commands.CreateOrderCommand{}), commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_UnknownStore(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, kernel.NewUUID(), order.Physical)
	stores := new(MockStoreLookup)
	stores.On("Lookup", ctx, storeCode).Return(nil, errs.NewServiceError("store SNAPITUP not found"))

	uow := newMockUoW()
	h := commands.NewCreateOrderCommandHandler(fulfillmentUoWFactory{uow}, stores, new(MockEventPublisher), discard)

	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrService)
	uow.assertAll(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, kernel.NewUUID(), order.Physical)

	uow := newMockUoW()
	uow.expectAbortedTx(ctx)
	uow.Orders.On("Add", ctx, mock.Anything).
		Return(errs.NewDuplicateOrderError(cmd.OrderNumber().String(), errors.New("23505"))).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewCreateOrderCommandHandler(fulfillmentUoWFactory{uow}, storeLookup(t), publisher, discard)

	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrDuplicateOrder)
	uow.assertAll(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_LineErrors(t *testing.T) {
	testCases := []struct {
		name      string
		shippable bool
		found     bool
		expected  error
	}{
		{name: "unknown sku", shippable: true, found: false, expected: errs.ErrObjectNotFound},
		{name: "sku not shippable", shippable: false, found: true, expected: errs.ErrService},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			sku := newProductSku(t, catalog.AlwaysAvailable, tc.shippable)
			cmd := newCreateOrderCommand(t, sku.GUID(), order.Physical)

			found := map[kernel.UUID]*catalog.ProductSku{}
			if tc.found {
				found[sku.GUID()] = sku
			}

			uow := newMockUoW()
			uow.expectAbortedTx(ctx)
			uow.Orders.On("Add", ctx, mock.Anything).Run(markPersisted).Return(nil).Once()
			uow.Skus.On("GetByGUIDs", ctx, mock.Anything).Return(found, nil).Once()

			h := commands.NewCreateOrderCommandHandler(
				fulfillmentUoWFactory{uow}, storeLookup(t), new(MockEventPublisher), discard,
			)

			require.ErrorIs(t, h.Handle(ctx, cmd), tc.expected)
			uow.assertAll(t)
		})
	}
}

func TestCreateOrderCommandHandler_Handle_PublishFailureIsNotAnError(t *testing.T) {
	ctx := t.Context()
	sku := newProductSku(t, catalog.AlwaysAvailable, false)
	cmd := newCreateOrderCommand(t, sku.GUID(), order.Electronic)

	uow := newMockUoW()
	uow.expectTx(ctx)
	uow.Orders.On("Add", ctx, mock.Anything).Run(markPersisted).Return(nil).Once()
	uow.Skus.On("GetByGUIDs", ctx, mock.Anything).Return(map[kernel.UUID]*catalog.ProductSku{sku.GUID(): sku}, nil)
	uow.Orders.On("Update", ctx, mock.Anything).Return(nil).Once()
	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	h := commands.NewCreateOrderCommandHandler(fulfillmentUoWFactory{uow}, storeLookup(t), publisher, discard)

	require.NoError(t, h.Handle(ctx, cmd))
	uow.assertAll(t)
	publisher.AssertExpectations(t)
}
