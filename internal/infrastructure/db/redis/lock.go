package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
)

const defaultLockTTL = 10 * time.Second

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by another process is never released by us.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Locker implements ports.Locker with SET NX and a per-acquisition token.
// Key format: lock:<key>
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLocker creates a Locker whose locks expire after ttl if never released.
func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Locker{client: client, ttl: ttl}
}

// Lock acquires key or returns ports.ErrLockHeld without waiting.
func (l *Locker) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	redisKey := "lock:" + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", redisKey, err)
	}
	if !ok {
		return nil, ports.ErrLockHeld
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil {
			return fmt.Errorf("release lock %s: %w", redisKey, err)
		}
		return nil
	}, nil
}
