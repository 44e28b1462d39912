package memory

import (
	"context"
	"sync"
	"time"

	"github.com/arklim/game-platform-auth/internal/core/port"
)

// AttemptStore keeps failure counters and ban expiries in process memory.
// This is the default backend for a single-instance deployment. Counters
// never expire on their own; the authentication engine resets them. Ban
// entries are overwritten in place and only ever bypassed once expired,
// matching the lazy-expiry design.
type AttemptStore struct {
	mu       sync.Mutex
	failures map[string]int
	bans     map[string]time.Time
}

// NewAttemptStore constructs an empty in-memory store.
func NewAttemptStore() *AttemptStore {
	return &AttemptStore{
		failures: make(map[string]int),
		bans:     make(map[string]time.Time),
	}
}

// AddFailure increments the failure counter for the login and returns the
// post-increment count.
func (s *AttemptStore) AddFailure(_ context.Context, login string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[login]++
	return s.failures[login], nil
}

// ResetFailures sets the failure counter for the login back to zero.
func (s *AttemptStore) ResetFailures(_ context.Context, login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[login] = 0
	return nil
}

// Ban records the ban expiry for the login.
func (s *AttemptStore) Ban(_ context.Context, login string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bans[login] = until
	return nil
}

// BannedUntil returns the recorded ban expiry for the login, if any. Expired
// entries are still reported; callers compare against their own clock.
func (s *AttemptStore) BannedUntil(_ context.Context, login string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.bans[login]
	return until, ok, nil
}

var _ port.AttemptStore = (*AttemptStore)(nil)
