// Package redis holds the Redis connection and the distributed lock used to
// serialise email uniqueness checks and recommendation approvals.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SoftGuar/Account-Management-Service/internal/infrastructure/config"
)

const dialTimeout = 5 * time.Second

// Client is the Redis connection shared by the account and recommendation
// locks and the readiness check.
type Client struct {
	rdb     *redis.Client
	lockTTL time.Duration
}

// Open connects to Redis and fails fast when the server does not answer a ping.
func Open(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	c := &Client{rdb: rdb, lockTTL: cfg.LockTTL}
	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return c, nil
}

// Locker returns the email and approval lock backed by this connection.
func (c *Client) Locker() *Locker {
	return NewLocker(c.rdb, c.lockTTL)
}

// Ping reports whether Redis is reachable; it backs /health/ready.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", c.rdb.Options().Addr, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
