package bus

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores channel values on a Redis server. All keys are namespaced as
// pipeline:{namespace}:channel:{name} so multiple pipeline instances can
// safely share one server.
type Redis struct {
	rdb       *redis.Client
	namespace string
}

// NewRedis creates a Redis-backed bus. The namespace must not be empty.
func NewRedis(redisOpts *redis.Options, namespace string) (*Redis, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	return &Redis{
		rdb:       redis.NewClient(redisOpts),
		namespace: namespace,
	}, nil
}

// Close closes the Redis connection. Implements io.Closer.
func (b *Redis) Close() error {
	return b.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for health checks.
func (b *Redis) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

// Set overwrites the channel's value. The value does not expire; like the
// in-process bus, a channel holds its last value for the instance lifetime.
func (b *Redis) Set(ctx context.Context, channel string, payload []byte) error {
	if err := validChannel(channel); err != nil {
		return err
	}
	if err := b.rdb.Set(ctx, b.key(channel), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write channel to Redis: %w", err)
	}
	return nil
}

// Get returns the channel's current value, or ErrNoData if it was never set.
func (b *Redis) Get(ctx context.Context, channel string) ([]byte, error) {
	if err := validChannel(channel); err != nil {
		return nil, err
	}
	data, err := b.rdb.Get(ctx, b.key(channel)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read channel from Redis: %w", err)
	}
	return data, nil
}

func (b *Redis) key(channel string) string {
	return fmt.Sprintf("pipeline:%s:channel:%s", b.namespace, channel)
}
