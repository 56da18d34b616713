// Package cache is a small key/value layer shared by the dashboard (cached
// summaries) and the rate limiter. Store has the same method set as
// fiber.Storage so one redis-backed store serves both.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "collegeaccounts:"

// KeyDashboardSummary is dropped by every exam-fee and employee write.
const KeyDashboardSummary = "dashboard:summary"

type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
	Reset() error
	Close() error
}

/* ====================== REDIS ====================== */

type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns nil when client is nil; callers fall back to Nop.
func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		return nil
	}
	return &RedisStore{client: client}
}

// Get returns nil, nil when the key does not exist.
func (s *RedisStore) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

// Set ignores empty keys and values. 0 expiration means no expiration.
func (s *RedisStore) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if err := s.client.Set(context.Background(), keyPrefix+key, val, exp).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(key string) error {
	if key == "" {
		return nil
	}
	if err := s.client.Del(context.Background(), keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Reset removes every key under the application prefix.
func (s *RedisStore) Reset() error {
	ctx := context.Background()
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

/* ====================== NOP ====================== */

// Nop never stores anything; used when redis is not configured.
type Nop struct{}

func (Nop) Get(string) ([]byte, error)              { return nil, nil }
func (Nop) Set(string, []byte, time.Duration) error { return nil }
func (Nop) Delete(string) error                     { return nil }
func (Nop) Reset() error                            { return nil }
func (Nop) Close() error                            { return nil }

/* ====================== JSON ====================== */

// GetJSON decodes a cached value into dst. found is false on a miss.
func GetJSON(s Store, key string, dst any) (found bool, err error) {
	raw, err := s.Get(key)
	if err != nil || raw == nil {
		return false, err
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(s Store, key string, v any, exp time.Duration) error {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(key, raw, exp)
}
