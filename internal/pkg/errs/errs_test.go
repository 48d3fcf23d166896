package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"commerce/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderNumber", "ORD-1")

		assert.Equal(t, "orderNumber", err.ParamName)
		assert.Equal(t, "ORD-1", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: ORD-1", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("orderNumber", "ORD-1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderNumber, ID is: ORD-1 (cause: connection reset)",
			err.Error())
	})
}

func TestValueErrors(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("currency", errors.New("XXQ is not ISO 4217"))
		assert.Equal(t, "value is invalid: currency (cause: XXQ is not ISO 4217)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("out of range", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 12, 0, 10)
		assert.Equal(t, "value is invalid: 12 is quantity, min value is 0, max value is 10", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("note", "first\nsecond", 0, 10)
		assert.Contains(t, err.Error(), "first second")
		assert.NotContains(t, err.Error(), "\n")
	})

	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("storeCode")
		assert.Equal(t, "value is required: storeCode", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("version", func(t *testing.T) {
		err := errs.NewVersionIsInvalidErrorWithCause("order", errors.New("stale"))
		assert.Equal(t, "version is invalid: order (cause: stale)", err.Error())
		require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}

func TestCommerceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "order not persisted",
			err:      errs.NewOrderNotPersistedError("A-1"),
			sentinel: errs.ErrOrderNotPersisted,
			message:  "order is not persisted: A-1",
		},
		{
			name:     "service",
			err:      errs.NewServiceError("store code is required"),
			sentinel: errs.ErrService,
			message:  "service error: store code is required",
		},
		{
			name:     "invalid unlocker",
			err:      errs.NewInvalidUnlockerError("A-1", "7", "9"),
			sentinel: errs.ErrInvalidUnlocker,
			message:  "invalid unlocker: user 9 cannot release the lock on order A-1 owned by user 7",
		},
		{
			name:     "illegal return state",
			err:      errs.NewIllegalReturnStateError("RMA-1", "COMPLETED"),
			sentinel: errs.ErrIllegalReturnState,
			message:  "illegal return state: return RMA-1 is COMPLETED",
		},
		{
			name:     "duplicate order",
			err:      errs.NewDuplicateOrderError("A-1", errors.New("23505")),
			sentinel: errs.ErrDuplicateOrder,
			message:  "duplicate order: A-1 (cause: 23505)",
		},
		{
			name:     "population runtime",
			err:      errs.NewPopulationRuntimeError("IE-10306", "xx_YY_zz"),
			sentinel: errs.ErrPopulationRuntime,
			message:  "population failed: IE-10306 [xx_YY_zz]",
		},
		{
			name:     "population rollback",
			err:      errs.NewPopulationRollbackError("IE-10309"),
			sentinel: errs.ErrPopulationRollback,
			message:  "population failed, import unit rolled back: IE-10309",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.sentinel)
		})
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("release lock: %w", errs.NewInvalidUnlockerError("A-1", "7", "9"))

	var target *errs.InvalidUnlockerError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "7", target.OwnerID)
	assert.Equal(t, "9", target.UnlockerID)

	var population *errs.PopulationRollbackError
	require.ErrorAs(t, errs.NewPopulationRollbackError("IE-10309", "code"), &population)
	assert.Equal(t, "IE-10309", population.Code)
	assert.Equal(t, []string{"code"}, population.Params)
}
