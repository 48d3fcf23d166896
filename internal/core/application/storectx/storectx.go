// Package storectx carries the current store code on a request context and resolves it to a
// store through a cache.
package storectx

import (
	"context"
	"log/slog"
	"strings"

	"commerce/internal/core/domain/model/store"
	"commerce/internal/core/ports"
	"commerce/internal/pkg/errs"
)

type storeCodeKey struct{}

// WithStoreCode returns a copy of ctx bound to the store code.
func WithStoreCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, storeCodeKey{}, strings.TrimSpace(code))
}

// StoreCode returns the store code bound to ctx, or a ServiceError when none is set.
func StoreCode(ctx context.Context) (string, error) {
	code, _ := ctx.Value(storeCodeKey{}).(string)
	if code == "" {
		return "", errs.NewServiceError("store code is not set")
	}
	return code, nil
}

var _ ports.StoreLookup = (*Lookup)(nil)

// Lookup reads stores through the cache and fills it from the repository on a miss. The cache
// is best effort: its failures are logged and the repository answers instead.
type Lookup struct {
	repo   ports.StoreRepository
	cache  ports.StoreCache
	logger *slog.Logger
}

func NewLookup(repo ports.StoreRepository, cache ports.StoreCache, logger *slog.Logger) *Lookup {
	return &Lookup{repo: repo, cache: cache, logger: logger.With("component", "store_lookup")}
}

// Lookup resolves code to a store. An empty code is a ServiceError.
func (l *Lookup) Lookup(ctx context.Context, code string) (*store.Store, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errs.NewServiceError("store code is required")
	}

	s, ok, err := l.cache.Get(ctx, code)
	if err != nil {
		l.logger.WarnContext(ctx, "Store cache read failed", "store", code, "error", err)
	} else if ok {
		return s, nil
	}

	s, err = l.repo.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if err = l.cache.Set(ctx, s); err != nil {
		l.logger.WarnContext(ctx, "Store cache write failed", "store", code, "error", err)
	}
	return s, nil
}
