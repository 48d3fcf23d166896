package queries

import (
	"errors"
	"strings"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

var ErrValidateOrderLockQueryIsNotConstructed = errors.New(
	"ValidateOrderLockQuery must be created via NewValidateOrderLockQuery constructor",
)

// ValidateOrderLockQuery asks whether an editor may still save an order. The editor presents the
// lock it obtained, identified by owner and creation time; a zero lockCreatedAt means it holds none.
type ValidateOrderLockQuery struct {
	orderNumber      kernel.UUID
	ownerID          string
	lockCreatedAt    time.Time
	openedEditorTime time.Time

	guard guard.ConstructorGuard
}

func NewValidateOrderLockQuery(
	orderNumber, ownerID string,
	lockCreatedAt, openedEditorTime time.Time,
) (ValidateOrderLockQuery, error) {
	number, err := kernel.UUIDFromString(orderNumber)
	if err != nil {
		return ValidateOrderLockQuery{}, err
	}
	if strings.TrimSpace(ownerID) == "" {
		return ValidateOrderLockQuery{}, errs.NewValueIsRequiredError("owner id")
	}
	if openedEditorTime.IsZero() {
		return ValidateOrderLockQuery{}, errs.NewValueIsRequiredError("open editor timestamp")
	}
	return ValidateOrderLockQuery{
		orderNumber:      number,
		ownerID:          ownerID,
		lockCreatedAt:    lockCreatedAt,
		openedEditorTime: openedEditorTime,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (q ValidateOrderLockQuery) Validate() error {
	return q.guard.Validate(ErrValidateOrderLockQueryIsNotConstructed)
}

type ValidateOrderLockQueryResponse struct {
	Result  string
	Success bool
}
