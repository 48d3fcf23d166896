package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var (
	ErrHoldOrderCommandIsNotConstructed = errors.New(
		"HoldOrderCommand must be created via NewHoldOrderCommand constructor",
	)
	ErrReleaseOrderCommandIsNotConstructed = errors.New(
		"ReleaseOrderCommand must be created via NewReleaseOrderCommand constructor",
	)
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrFailOrderCommandIsNotConstructed = errors.New(
		"FailOrderCommand must be created via NewFailOrderCommand constructor",
	)
)

// HoldOrderCommand puts an order on hold.
type HoldOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.UUID

	guard guard.ConstructorGuard
}

func NewHoldOrderCommand(orderNumber kernel.UUID) (HoldOrderCommand, error) {
	if err := orderNumber.Validate(); err != nil {
		return HoldOrderCommand{}, err
	}
	return HoldOrderCommand{orderNumber: orderNumber, guard: guard.NewConstructorGuard()}, nil
}

func (c HoldOrderCommand) Validate() error {
	return c.guard.Validate(ErrHoldOrderCommandIsNotConstructed)
}

func (c HoldOrderCommand) OrderNumber() kernel.UUID { return c.orderNumber }

// ReleaseOrderCommand releases the hold on an order (or moves a created order in progress).
type ReleaseOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.UUID

	guard guard.ConstructorGuard
}

func NewReleaseOrderCommand(orderNumber kernel.UUID) (ReleaseOrderCommand, error) {
	if err := orderNumber.Validate(); err != nil {
		return ReleaseOrderCommand{}, err
	}
	return ReleaseOrderCommand{orderNumber: orderNumber, guard: guard.NewConstructorGuard()}, nil
}

func (c ReleaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrReleaseOrderCommandIsNotConstructed)
}

func (c ReleaseOrderCommand) OrderNumber() kernel.UUID { return c.orderNumber }

// CancelOrderCommand cancels an order and gives its allocated stock back.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderNumber kernel.UUID) (CancelOrderCommand, error) {
	if err := orderNumber.Validate(); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderNumber: orderNumber, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderNumber() kernel.UUID { return c.orderNumber }

// FailOrderCommand marks an order failed, e.g. when its payment could not be authorized.
type FailOrderCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.UUID

	guard guard.ConstructorGuard
}

func NewFailOrderCommand(orderNumber kernel.UUID) (FailOrderCommand, error) {
	if err := orderNumber.Validate(); err != nil {
		return FailOrderCommand{}, err
	}
	return FailOrderCommand{orderNumber: orderNumber, guard: guard.NewConstructorGuard()}, nil
}

func (c FailOrderCommand) Validate() error {
	return c.guard.Validate(ErrFailOrderCommandIsNotConstructed)
}

func (c FailOrderCommand) OrderNumber() kernel.UUID { return c.orderNumber }
