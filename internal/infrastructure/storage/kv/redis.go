// internal/infrastructure/storage/kv/redis.go
package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a Redis server. It is an optional
// backend for deployments that already run Redis; values are plain
// string keys holding JSON blobs, the same shape the persisted cart
// had in the original storefront.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisOptions configures a RedisStore connection.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, keyPrefix: opts.KeyPrefix}, nil
}

func (s *RedisStore) key(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + ":" + key
}

// Get retrieves a value by key.
func (s *RedisStore) Get(key string) ([]byte, error) {
	value, err := s.client.Get(context.Background(), s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

// Set writes value under key with no expiration.
func (s *RedisStore) Set(key string, value []byte) error {
	if err := s.client.Set(context.Background(), s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key; deleting an absent key is a no-op.
func (s *RedisStore) Delete(key string) error {
	if err := s.client.Del(context.Background(), s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete %q: %w", key, err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
