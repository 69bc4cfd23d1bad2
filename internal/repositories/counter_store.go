package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounterStore implements risk.CounterStore. One call performs a
// single pipelined INCR + EXPIRE NX round trip, so the returned count
// is post-increment and the key's expiry is set once, on first
// increment, to the intended day boundary. Concurrent increments for
// the same key never lose an update: INCR is atomic server-side.
type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

// IncrementAndGet atomically increments key and returns the new count.
func (s *RedisCounterStore) IncrementAndGet(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
