package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const DefaultCounterKey = "naija-tax:user-count"

// RedisCounter keeps the tally in a single Redis key. INCR is atomic, so
// concurrent submissions across processes never lose an update.
type RedisCounter struct {
	client *redis.Client
	key    string
}

func NewRedisCounter(addr, key string) *RedisCounter {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return NewRedisCounterWithClient(rdb, key)
}

func NewRedisCounterWithClient(client *redis.Client, key string) *RedisCounter {
	if key == "" {
		key = DefaultCounterKey
	}
	return &RedisCounter{
		client: client,
		key:    key,
	}
}

func (r *RedisCounter) GetCount(ctx context.Context) (int64, error) {
	val, err := r.client.Get(ctx, r.key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return val, nil
}

func (r *RedisCounter) Increment(ctx context.Context) (int64, error) {
	val, err := r.client.Incr(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", r.key, err)
	}
	return val, nil
}

func (r *RedisCounter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCounter) Close() error {
	return r.client.Close()
}
