package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key, e.g. "curriculum:".
	Prefix string
}

// RedisStore implements Store on Redis string keys.
//
// Values are stored without expiry; a completed-set is small and is
// replaced wholesale on every toggle.
type RedisStore struct {
	client *redis.Client
	prefix string

	mu     sync.RWMutex
	closed bool
}

// NewRedisStore creates a store backed by a new Redis client.
//
// The client connects lazily; use Ping to verify connectivity at startup.
func NewRedisStore(opts RedisOptions) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisStoreFromClient(rdb, opts.Prefix)
}

// NewRedisStoreFromClient wraps an existing client. The store takes
// ownership of the client and closes it on Close.
func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) key(k string) string {
	return r.prefix + k
}

func (r *RedisStore) checkOpen() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrClosed
	}
	return nil
}

// Get returns the value for key or ErrNotFound.
func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	if err := r.checkOpen(); err != nil {
		return "", err
	}

	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load entry: %w", err)
	}
	return value, nil
}

// Put sets key to value without expiry.
func (r *RedisStore) Put(ctx context.Context, key, value string) error {
	if err := r.checkOpen(); err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

// Delete removes key if present.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.checkOpen(); err != nil {
		return err
	}

	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// Ping verifies the Redis server is reachable.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.checkOpen(); err != nil {
		return err
	}
	return r.client.Ping(ctx).Err()
}

// Close closes the client. Double-close is a no-op.
func (r *RedisStore) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true
	return r.client.Close()
}
