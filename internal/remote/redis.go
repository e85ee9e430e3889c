package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig locates a Redis server.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
	// KeyPrefix namespaces blob keys. Defaults to "tabzero:".
	KeyPrefix string
}

// RedisStore keeps blobs as Redis string values.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a client for cfg and pings it.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		MaxRetries:  -1,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis unavailable at %s: %w", cfg.Addr, err)
	}

	return NewRedisStoreFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "tabzero:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Close closes the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) key(name string) string {
	return r.prefix + name
}

func (r *RedisStore) Put(ctx context.Context, name string, data []byte) error {
	if err := r.client.Set(ctx, r.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save blob: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRemoteNotFound
		}
		return nil, fmt.Errorf("failed to get blob: %w", err)
	}
	return data, nil
}

func (r *RedisStore) Exists(ctx context.Context, name string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(name)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blob: %w", err)
	}
	return n > 0, nil
}
