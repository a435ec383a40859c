// Package redis serializes lifecycle operations on one order across service
// instances with a Redis lock.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "order-lock:"

// ErrLockLost is returned by release when the lock expired and was taken by
// someone else before the holder released it.
var ErrLockLost = errors.New("order lock expired before release")

// releaseScript deletes the key only if it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// OrderLocker implements ports.OrderLocker with SET NX PX.
type OrderLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewOrderLocker(rdb *redis.Client, ttl time.Duration) *OrderLocker {
	return &OrderLocker{rdb: rdb, ttl: ttl}
}

// Lock acquires the lock without waiting. A held lock yields
// ports.ErrOrderLocked. The lock expires after the configured TTL even if
// release is never called.
func (l *OrderLocker) Lock(ctx context.Context, id kernel.UUID) (func(context.Context) error, error) {
	key := Key(id)
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return nil, ports.ErrOrderLocked
	}

	release := func(ctx context.Context) error {
		deleted, relErr := releaseScript.Run(ctx, l.rdb, []string{key}, token).Int64()
		if relErr != nil {
			return fmt.Errorf("release %s: %w", key, relErr)
		}
		if deleted == 0 {
			return ErrLockLost
		}
		return nil
	}
	return release, nil
}

// Key is the Redis key guarding an order.
func Key(id kernel.UUID) string {
	return keyPrefix + id.String()
}
