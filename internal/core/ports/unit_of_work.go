package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories it hands out use the
// transaction started by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ReturnRepository() ReturnRepository
	OrderLockRepository() OrderLockRepository
	ProductSkuRepository() ProductSkuRepository
	InventoryRepository() InventoryRepository
	StoreRepository() StoreRepository
}
