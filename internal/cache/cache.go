// Package cache holds the Redis-backed store for refresh sessions and the
// aggregate stats snapshot. It fails safe: when Redis is down every read is a
// miss and every write is a no-op, so the submission pipeline keeps working.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a nil-safe wrapper around redis.Client. A nil *Client behaves like
// an always-empty cache, which tests and degraded deployments rely on.
type Client struct {
	rdb *redis.Client
}

// New dials Redis at addr. The connection is lazy; failures surface only as
// cache misses.
func New(addr, password string, db int) *Client {
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Ping reports whether Redis is reachable, for startup diagnostics only.
func (c *Client) Ping(ctx context.Context) error {
	if !c.usable() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Get returns the stored value, or nil for a miss. Connectivity errors count
// as misses.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.usable() {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and transport errors alike degrade to a miss
		return nil, nil
	}
	return data, nil
}

// Set stores value under key for ttl. Write failures are swallowed.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.usable() {
		_ = c.rdb.Set(ctx, key, value, ttl).Err()
	}
	return nil
}

// Delete drops key. Failures are swallowed; an undeleted stats snapshot just
// expires with its TTL.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c.usable() {
		_ = c.rdb.Del(ctx, key).Err()
	}
	return nil
}

func (c *Client) usable() bool {
	return c != nil && c.rdb != nil
}
