package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arklim/game-platform-auth/internal/core/port"
)

// AttemptStoreConfig configures key naming and counter retention.
type AttemptStoreConfig struct {
	KeyPrefix  string
	CounterTTL time.Duration
}

// AttemptStore persists failure counters and ban expiries in Redis so that
// several authentication server instances share throttling state.
type AttemptStore struct {
	client *redis.Client
	cfg    AttemptStoreConfig
}

// NewAttemptStore constructs a store using the provided Redis client.
func NewAttemptStore(client *redis.Client, cfg AttemptStoreConfig) *AttemptStore {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "auth"
	}
	return &AttemptStore{client: client, cfg: cfg}
}

// AddFailure increments the failure counter for the login and returns the
// post-increment count.
func (s *AttemptStore) AddFailure(ctx context.Context, login string) (int, error) {
	key := s.failureKey(login)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}

	if s.cfg.CounterTTL > 0 {
		if err := s.client.Expire(ctx, key, s.cfg.CounterTTL).Err(); err != nil {
			return 0, fmt.Errorf("redis expire: %w", err)
		}
	}

	return int(count), nil
}

// ResetFailures clears the failure counter for the login.
func (s *AttemptStore) ResetFailures(ctx context.Context, login string) error {
	if err := s.client.Del(ctx, s.failureKey(login)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Ban records the ban expiry for the login. The key carries the expiry both
// as its value and as its TTL, so stale bans clean themselves up.
func (s *AttemptStore) Ban(ctx context.Context, login string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	value := strconv.FormatInt(until.UnixMilli(), 10)
	if err := s.client.Set(ctx, s.banKey(login), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// BannedUntil returns the recorded ban expiry for the login, if any.
func (s *AttemptStore) BannedUntil(ctx context.Context, login string) (time.Time, bool, error) {
	value, err := s.client.Get(ctx, s.banKey(login)).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis get: %w", err)
	}

	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse ban expiry: %w", err)
	}

	return time.UnixMilli(millis).UTC(), true, nil
}

func (s *AttemptStore) failureKey(login string) string {
	return fmt.Sprintf("%s:failures:%s", s.cfg.KeyPrefix, login)
}

func (s *AttemptStore) banKey(login string) string {
	return fmt.Sprintf("%s:ban:%s", s.cfg.KeyPrefix, login)
}

var _ port.AttemptStore = (*AttemptStore)(nil)
