package ports

import (
	"context"

	"commerce/internal/core/domain/model/store"
)

type StoreRepository interface {
	Add(ctx context.Context, s *store.Store) error
	Get(ctx context.Context, code string) (*store.Store, error)
}

// StoreCache keeps stores for a bounded time per key.
type StoreCache interface {
	// Get reports false on a miss.
	Get(ctx context.Context, code string) (*store.Store, bool, error)
	Set(ctx context.Context, s *store.Store) error
}

// StoreLookup resolves a store code to a store, reading through a StoreCache.
type StoreLookup interface {
	Lookup(ctx context.Context, code string) (*store.Store, error)
}
