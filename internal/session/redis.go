package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisKV stores sessions as plain keys with a native TTL.
type RedisKV struct {
	client redis.Cmdable
}

// NewRedisKV wraps a go-redis client.
func NewRedisKV(client redis.Cmdable) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, id string) ([]byte, error) {
	value, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return value, err
}

func (r *RedisKV) Set(ctx context.Context, id string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, redisKeyPrefix+id, value, ttl).Err()
}

func (r *RedisKV) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKeyPrefix+id).Err()
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
