// Package cache is a small JSON cache-aside layer over Redis. A nil *Store is a
// valid, disabled cache: reads miss and writes are dropped.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 10 * time.Minute

type Store struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// New wraps client. ttl <= 0 uses DefaultTTL.
func New(client *redis.Client, ttl time.Duration, log *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl, log: log}
}

// Connect dials addr and pings it.
func Connect(ctx context.Context, addr string, log *slog.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return New(client, DefaultTTL, log), nil
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.client.Close()
}

// GetJSON decodes the value at key into dest. It reports false on a miss.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if s == nil {
		return false, nil
	}

	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) SetJSON(ctx context.Context, key string, value any) error {
	if s == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, s.ttl).Err()
}

// Invalidate deletes keys. Missing keys are not an error.
func (s *Store) Invalidate(ctx context.Context, keys ...string) error {
	if s == nil || len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Aside returns the cached value at key, or calls load and caches its result.
// Redis failures are logged and fall through to load.
func Aside[T any](ctx context.Context, s *Store, key string, load func() (*T, error)) (*T, error) {
	var cached T
	hit, err := s.GetJSON(ctx, key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", key), slog.Any("error", err))
	}
	if hit {
		return &cached, nil
	}

	value, err := load()
	if err != nil {
		return nil, err
	}

	if err := s.SetJSON(ctx, key, value); err != nil {
		s.log.Warn("cache write failed", slog.String("key", key), slog.Any("error", err))
	}
	return value, nil
}

func CategoryKey(id uint64) string {
	return fmt.Sprintf("category:%d", id)
}

func TagKey(id uint64) string {
	return fmt.Sprintf("tag:%d", id)
}
