package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores values as plain Redis strings.
type RedisBackend struct {
	rdb *redis.Client
}

// NewRedisBackend creates a backend connected to addr.
func NewRedisBackend(addr, password string, db int) *RedisBackend {
	return &RedisBackend{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// NewRedisBackendWithClient wraps an existing redis.Client.
func NewRedisBackendWithClient(rdb *redis.Client) (*RedisBackend, error) {
	if rdb == nil {
		return nil, errors.New("redis client is nil")
	}
	return &RedisBackend{rdb: rdb}, nil
}

// Ping checks connectivity.
func (r *RedisBackend) Ping(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}
	return nil
}

// Read returns the value stored under key.
func (r *RedisBackend) Read(ctx context.Context, key string) ([]byte, error) {
	val, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

// Write stores value under key without expiry.
func (r *RedisBackend) Write(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close releases the client's connections.
func (r *RedisBackend) Close() error {
	return r.rdb.Close()
}
