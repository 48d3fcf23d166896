package commands_test

import (
	"testing"
	"time"

	"commerce/internal/core/application/usecases/commands"
	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/orderlock"
	"commerce/internal/core/domain/services"
	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestObtainOrderLock(t *testing.T) {
	o := placedOrder(t, newProductSku(t, catalog.AlwaysAvailable, true))
	opened := time.Now().UTC()

	testCases := []struct {
		name     string
		opened   time.Time
		inserted bool
		expected error
	}{
		{name: "lock obtained", opened: opened, inserted: true},
		{name: "lock held by another editor", opened: opened, inserted: false, expected: commands.ErrOrderLockNotObtained},
		{name: "order modified after editor opened", opened: o.LastModified().Add(-time.Minute), expected: commands.ErrOrderLockNotObtained},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			uow := newMockUoW()
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			uow.Orders.On("Get", ctx, o.GUID()).Return(o, nil).Once()
			if !tc.opened.Before(o.LastModified()) {
				uow.Locks.On("AddIfAbsent", ctx, mock.AnythingOfType("*orderlock.OrderLock")).Return(tc.inserted, nil).Once()
			}
			if tc.expected == nil {
				uow.On("Commit", ctx).Return(nil).Once()
			}

			h := commands.NewObtainOrderLockCommandHandler(lockUoWFactory{uow}, services.NewOrderLockValidator())
			cmd, err := commands.NewObtainOrderLockCommand(o.GUID(), "editor-1", tc.opened)
			require.NoError(t, err)

			lock, err := h.Handle(ctx, cmd)
			if tc.expected != nil {
				require.ErrorIs(t, err, tc.expected)
				assert.Nil(t, lock)
			} else {
				require.NoError(t, err)
				assert.Equal(t, o.Number(), lock.OrderNumber())
				assert.Equal(t, "editor-1", lock.OwnerID())
			}
			uow.assertAll(t)
		})
	}
}

func TestReleaseOrderLock(t *testing.T) {
	o := placedOrder(t, newProductSku(t, catalog.AlwaysAvailable, true))
	lock, err := orderlock.NewOrderLock(o.Number(), "editor-1", time.Now().UTC())
	require.NoError(t, err)

	t.Run("owner releases", func(t *testing.T) {
		ctx := t.Context()
		uow := newMockUoW()
		uow.expectTx(ctx)
		uow.Locks.On("Get", ctx, o.Number()).Return(lock, nil).Once()
		uow.Locks.On("Remove", ctx, o.Number()).Return(nil).Once()

		h := commands.NewReleaseOrderLockCommandHandler(lockUoWFactory{uow})
		cmd, err := commands.NewReleaseOrderLockCommand(o.GUID(), "editor-1")
		require.NoError(t, err)

		require.NoError(t, h.Handle(ctx, cmd))
		uow.assertAll(t)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		ctx := t.Context()
		uow := newMockUoW()
		uow.expectAbortedTx(ctx)
		uow.Locks.On("Get", ctx, o.Number()).Return(lock, nil).Once()

		h := commands.NewReleaseOrderLockCommandHandler(lockUoWFactory{uow})
		cmd, err := commands.NewReleaseOrderLockCommand(o.GUID(), "editor-2")
		require.NoError(t, err)

		err = h.Handle(ctx, cmd)
		require.ErrorIs(t, err, errs.ErrInvalidUnlocker)
		var unlockerErr *errs.InvalidUnlockerError
		require.ErrorAs(t, err, &unlockerErr)
		assert.Equal(t, "editor-1", unlockerErr.OwnerID)
		assert.Equal(t, "editor-2", unlockerErr.UnlockerID)
		uow.assertAll(t)
	})

	t.Run("unlocked order", func(t *testing.T) {
		ctx := t.Context()
		uow := newMockUoW()
		uow.expectAbortedTx(ctx)
		uow.Locks.On("Get", ctx, o.Number()).Return(nil, errs.NewObjectNotFoundError("order lock", o.Number())).Once()

		h := commands.NewReleaseOrderLockCommandHandler(lockUoWFactory{uow})
		cmd, err := commands.NewReleaseOrderLockCommand(o.GUID(), "editor-2")
		require.NoError(t, err)

		require.NoError(t, h.Handle(ctx, cmd))
		uow.assertAll(t)
	})

	t.Run("forced release skips the owner check", func(t *testing.T) {
		ctx := t.Context()
		uow := newMockUoW()
		uow.expectTx(ctx)
		uow.Locks.On("Remove", ctx, o.Number()).Return(nil).Once()

		h := commands.NewReleaseOrderLockCommandHandler(lockUoWFactory{uow})
		cmd, err := commands.NewForceReleaseOrderLockCommand(o.GUID())
		require.NoError(t, err)

		require.NoError(t, h.Handle(ctx, cmd))
		uow.Locks.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		uow.assertAll(t)
	})
}

func TestReapOrderLocks(t *testing.T) {
	ctx := t.Context()
	uow := newMockUoW()
	uow.expectTx(ctx)
	before := time.Now().UTC().Add(-30 * time.Minute)
	uow.Locks.On("RemoveCreatedBefore", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		return !cutoff.Before(before) && cutoff.Before(time.Now().UTC().Add(-29*time.Minute))
	})).Return(int64(3), nil).Once()

	h := commands.NewReapOrderLocksCommandHandler(lockUoWFactory{uow})
	cmd, err := commands.NewReapOrderLocksCommand(30 * time.Minute)
	require.NoError(t, err)

	removed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	uow.assertAll(t)
}
