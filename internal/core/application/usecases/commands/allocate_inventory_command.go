package commands

import (
	"errors"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/guard"
)

var ErrAllocateInventoryCommandIsNotConstructed = errors.New(
	"AllocateInventoryCommand must be created via NewAllocateInventoryCommand constructor",
)

// AllocateInventoryCommand runs one allocation pass over the open lines of an order.
type AllocateInventoryCommand struct { //nolint:recvcheck //using for validation
	orderNumber kernel.UUID

	guard guard.ConstructorGuard
}

func NewAllocateInventoryCommand(orderNumber kernel.UUID) (AllocateInventoryCommand, error) {
	if err := orderNumber.Validate(); err != nil {
		return AllocateInventoryCommand{}, err
	}
	return AllocateInventoryCommand{orderNumber: orderNumber, guard: guard.NewConstructorGuard()}, nil
}

func (c AllocateInventoryCommand) Validate() error {
	return c.guard.Validate(ErrAllocateInventoryCommandIsNotConstructed)
}

func (c AllocateInventoryCommand) OrderNumber() kernel.UUID { return c.orderNumber }
