package selection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKey holds the pending selection.
const RedisKey = "sachai:selectedText"

// RedisStore keeps the pending selection in Redis. Take uses GETDEL, so the
// read and the delete are a single atomic command.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to the Redis server at url. Selections expire after
// ttl; zero keeps them until taken.
func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return NewRedisStoreFromClient(redis.NewClient(opt), ttl), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Put stores text as the pending selection.
func (s *RedisStore) Put(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptySelection
	}
	if err := s.rdb.Set(ctx, RedisKey, text, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store selection: %w", err)
	}
	return nil
}

// Take returns and deletes the pending selection.
func (s *RedisStore) Take(ctx context.Context) (string, bool, error) {
	text, err := s.rdb.GetDel(ctx, RedisKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to take selection: %w", err)
	}
	return text, true, nil
}

// Pending reports whether the selection key exists.
func (s *RedisStore) Pending(ctx context.Context) (bool, error) {
	n, err := s.rdb.Exists(ctx, RedisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check selection: %w", err)
	}
	return n > 0, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
