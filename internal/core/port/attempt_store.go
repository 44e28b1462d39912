package port

import (
	"context"
	"time"
)

// AttemptStore tracks per-login authentication failures and temporary bans.
// The authentication engine serializes read-modify-write sequences per login,
// so implementations only need individual operations to be safe.
type AttemptStore interface {
	// AddFailure increments the failure counter for the login and returns the
	// post-increment count.
	AddFailure(ctx context.Context, login string) (int, error)
	// ResetFailures sets the failure counter for the login back to zero.
	ResetFailures(ctx context.Context, login string) error
	// Ban suspends the login until the given instant.
	Ban(ctx context.Context, login string, until time.Time) error
	// BannedUntil returns the ban expiry for the login, if any. Expired bans
	// may still be reported; callers compare against their own clock.
	BannedUntil(ctx context.Context, login string) (time.Time, bool, error)
}
