package commands

import (
	"errors"
	"strings"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

var (
	ErrObtainOrderLockCommandIsNotConstructed = errors.New(
		"ObtainOrderLockCommand must be created via NewObtainOrderLockCommand constructor",
	)
	ErrReleaseOrderLockCommandIsNotConstructed = errors.New(
		"ReleaseOrderLockCommand must be created via NewReleaseOrderLockCommand or NewForceReleaseOrderLockCommand",
	)
	ErrReapOrderLocksCommandIsNotConstructed = errors.New(
		"ReapOrderLocksCommand must be created via NewReapOrderLocksCommand constructor",
	)
)

// ObtainOrderLockCommand locks an order for an editor that read it at openEditorTimestamp.
type ObtainOrderLockCommand struct { //nolint:recvcheck //using for validation
	orderNumber         kernel.UUID
	userID              string
	openEditorTimestamp time.Time

	guard guard.ConstructorGuard
}

func NewObtainOrderLockCommand(
	orderNumber kernel.UUID,
	userID string,
	openEditorTimestamp time.Time,
) (ObtainOrderLockCommand, error) {
	errList := []error{orderNumber.Validate(), requireUser(userID)}
	if openEditorTimestamp.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("open editor timestamp"))
	}
	if err := errors.Join(errList...); err != nil {
		return ObtainOrderLockCommand{}, err
	}
	return ObtainOrderLockCommand{
		orderNumber:         orderNumber,
		userID:              userID,
		openEditorTimestamp: openEditorTimestamp,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

func (c ObtainOrderLockCommand) Validate() error {
	return c.guard.Validate(ErrObtainOrderLockCommandIsNotConstructed)
}

func (c ObtainOrderLockCommand) OrderNumber() kernel.UUID       { return c.orderNumber }
func (c ObtainOrderLockCommand) UserID() string                 { return c.userID }
func (c ObtainOrderLockCommand) OpenEditorTimestamp() time.Time { return c.openEditorTimestamp }

// ReleaseOrderLockCommand releases an order lock. Only the owner may release a lock unless
// the release is forced.
type ReleaseOrderLockCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.UUID
	userID      string
	force       bool

	guard guard.ConstructorGuard
}

func NewReleaseOrderLockCommand(orderNumber kernel.UUID, userID string) (ReleaseOrderLockCommand, error) {
	if err := errors.Join(orderNumber.Validate(), requireUser(userID)); err != nil {
		return ReleaseOrderLockCommand{}, err
	}
	return ReleaseOrderLockCommand{orderNumber: orderNumber, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func NewForceReleaseOrderLockCommand(orderNumber kernel.UUID) (ReleaseOrderLockCommand, error) {
	if err := orderNumber.Validate(); err != nil {
		return ReleaseOrderLockCommand{}, err
	}
	return ReleaseOrderLockCommand{orderNumber: orderNumber, force: true, guard: guard.NewConstructorGuard()}, nil
}

func (c ReleaseOrderLockCommand) Validate() error {
	return c.guard.Validate(ErrReleaseOrderLockCommandIsNotConstructed)
}

func (c ReleaseOrderLockCommand) OrderNumber() kernel.UUID { return c.orderNumber }
func (c ReleaseOrderLockCommand) UserID() string           { return c.userID }
func (c ReleaseOrderLockCommand) IsForced() bool           { return c.force }

// ReapOrderLocksCommand force-releases every lock older than maxAge.
type ReapOrderLocksCommand struct { //nolint:recvcheck //using for validation
	maxAge time.Duration

	guard guard.ConstructorGuard
}

func NewReapOrderLocksCommand(maxAge time.Duration) (ReapOrderLocksCommand, error) {
	if maxAge <= 0 {
		return ReapOrderLocksCommand{}, errs.NewValueIsOutOfRangeError("max lock age", maxAge, "1ns", "unbounded")
	}
	return ReapOrderLocksCommand{maxAge: maxAge, guard: guard.NewConstructorGuard()}, nil
}

func (c ReapOrderLocksCommand) Validate() error {
	return c.guard.Validate(ErrReapOrderLocksCommandIsNotConstructed)
}

func (c ReapOrderLocksCommand) MaxAge() time.Duration { return c.maxAge }

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errs.NewValueIsRequiredError("user id")
	}
	return nil
}
