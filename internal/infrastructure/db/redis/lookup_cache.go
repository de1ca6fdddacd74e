package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/logisco/courierfront/internal/core/ports"
)

// LookupCache memoises geocoding and pincode answers.
// Key format: courierfront:<namespace>:<key>
type LookupCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.LookupCache = (*LookupCache)(nil)

// NewLookupCache creates a LookupCache whose entries expire after ttl.
func NewLookupCache(client *redis.Client, ttl time.Duration) *LookupCache {
	return &LookupCache{client: client, ttl: ttl}
}

// Get decodes a cached value into dst and reports whether it was present.
func (c *LookupCache) Get(ctx context.Context, namespace, k string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key(namespace, k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("lookup cache decode: %w", err)
	}
	return true, nil
}

// Set stores value as JSON (expires after the configured ttl).
func (c *LookupCache) Set(ctx context.Context, namespace, k string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("lookup cache encode: %w", err)
	}
	return c.client.Set(ctx, key(namespace, k), raw, c.ttl).Err()
}
