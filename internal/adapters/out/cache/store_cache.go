// Package cache keeps stores for a bounded time per key, either in process or in redis.
package cache

import (
	"context"
	"time"

	"commerce/internal/core/domain/model/store"
	"commerce/internal/core/ports"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultStoreCacheSize = 256

// LRUStoreCache is an in-process cache; each entry expires ttl after it was set.
type LRUStoreCache struct {
	lru *expirable.LRU[string, *store.Store]
}

var _ ports.StoreCache = (*LRUStoreCache)(nil)

// NewLRUStoreCache keeps at most size stores. A size of zero or less uses the default.
func NewLRUStoreCache(size int, ttl time.Duration) *LRUStoreCache {
	if size <= 0 {
		size = defaultStoreCacheSize
	}
	return &LRUStoreCache{lru: expirable.NewLRU[string, *store.Store](size, nil, ttl)}
}

func (c *LRUStoreCache) Get(_ context.Context, code string) (*store.Store, bool, error) {
	s, ok := c.lru.Get(code)
	return s, ok, nil
}

func (c *LRUStoreCache) Set(_ context.Context, s *store.Store) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.lru.Add(s.Code(), s)
	return nil
}
