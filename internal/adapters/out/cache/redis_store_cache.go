package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/core/domain/model/store"
	"commerce/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// RedisStoreCache shares cached stores between instances. Entries expire through the redis TTL.
type RedisStoreCache struct {
	client    redis.Cmdable
	ttl       time.Duration
	keyPrefix string
}

var _ ports.StoreCache = (*RedisStoreCache)(nil)

type storeEntry struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	WarehouseID     int64  `json:"warehouseId"`
	DefaultCurrency string `json:"defaultCurrency"`
	DefaultLocale   string `json:"defaultLocale"`
}

func NewRedisStoreCache(client redis.Cmdable, serviceName string, ttl time.Duration) *RedisStoreCache {
	return &RedisStoreCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: fmt.Sprintf("%s:store:", serviceName),
	}
}

func (c *RedisStoreCache) Get(ctx context.Context, code string) (*store.Store, bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry storeEntry
	if err = json.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("cached store %s: %w", code, err)
	}
	s, err := entry.toDomain()
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

func (c *RedisStoreCache) Set(ctx context.Context, s *store.Store) error {
	if err := s.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(storeEntry{
		Code:            s.Code(),
		Name:            s.Name(),
		WarehouseID:     s.WarehouseID(),
		DefaultCurrency: s.DefaultCurrency().Code(),
		DefaultLocale:   s.DefaultLocale().String(),
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.keyPrefix+s.Code(), payload, c.ttl).Err()
}

func (e storeEntry) toDomain() (*store.Store, error) {
	currency, err := kernel.ParseCurrency(e.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	locale, err := kernel.ParseLocale(e.DefaultLocale)
	if err != nil {
		return nil, err
	}
	return store.NewStore(e.Code, e.Name, e.WarehouseID, currency, locale)
}
