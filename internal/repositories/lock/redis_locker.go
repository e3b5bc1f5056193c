package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
)

const (
	redisKeyPrefix    = "stockverify:lock:"
	redisRetryEvery   = 25 * time.Millisecond
	redisReleaseAfter = 2 * time.Second
)

// RedisLocker shares item locks between service instances through Redis.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewRedisLocker creates a RedisLocker. ttl bounds how long a crashed holder keeps a key.
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb), ttl: ttl}
}

var _ portsrepo.ItemLocker = (*RedisLocker)(nil)

func (l *RedisLocker) Lock(ctx context.Context, key string, wait time.Duration) (portsrepo.Unlock, error) {
	retries := int(wait / redisRetryEvery)
	if retries < 1 {
		retries = 1
	}
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(redisRetryEvery), retries),
	}

	held, err := l.client.Obtain(ctx, redisKeyPrefix+key, l.ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ErrNotObtained, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain redis lock %s: %w", key, err)
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), redisReleaseAfter)
		defer cancel()
		if err := held.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			slog.Default().Warn("failed to release redis lock",
				slog.String("lock_key", key),
				slog.String("error", err.Error()))
		}
	}, nil
}
