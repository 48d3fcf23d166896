// Package commands contains the state-changing operations of order management.
// Each operation is a command value built by a validating constructor and a handler that
// runs it inside one unit of work, then publishes the resulting lifecycle event.
package commands

import (
	"context"

	"commerce/internal/core/ports"
)

// Unit of Work interfaces narrowed to the repositories each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ReturnRepoFactory interface {
		ReturnRepository() ports.ReturnRepository
	}

	OrderLockRepoFactory interface {
		OrderLockRepository() ports.OrderLockRepository
	}

	// CatalogRepoFactory exposes product skus and warehouse stock.
	CatalogRepoFactory interface {
		ProductSkuRepository() ports.ProductSkuRepository
		InventoryRepository() ports.InventoryRepository
	}

	// OrderUoW is used by commands that only change the order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// FulfillmentUoW is used by commands that change an order together with inventory.
	FulfillmentUoW interface {
		TxManager
		OrderRepoFactory
		CatalogRepoFactory
	}

	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// ReturnUoW is used by return and exchange commands.
	ReturnUoW interface {
		TxManager
		OrderRepoFactory
		ReturnRepoFactory
		CatalogRepoFactory
	}

	ReturnUoWFactory interface {
		Create() ReturnUoW
	}

	// OrderLockUoW is used by editor lock commands.
	OrderLockUoW interface {
		TxManager
		OrderRepoFactory
		OrderLockRepoFactory
	}

	OrderLockUoWFactory interface {
		Create() OrderLockUoW
	}
)
