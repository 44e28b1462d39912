package port

import (
	"context"

	"github.com/arklim/game-platform-auth/internal/core/domain"
)

// AccountStore exposes persistence behavior for pending and permanent
// accounts. Existence checks span both; the uniqueness constraint enforced by
// the backing store remains the source of truth, the checks only allow a
// friendlier error before the insert races.
type AccountStore interface {
	// LoginExists reports whether the login is taken by an active permanent
	// account or a pending one.
	LoginExists(ctx context.Context, login string) (bool, error)
	// EmailExists reports whether the email is used by an active permanent
	// account or a pending one.
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreatePending persists an unconfirmed signup. The password is hashed
	// before it reaches storage. A duplicate login or email surfaces as
	// repository.ErrDuplicate.
	CreatePending(ctx context.Context, account domain.TemporaryAccount, token string) error
	// Confirm atomically promotes the pending account matching the presented
	// token into a permanent one. Returns repository.ErrNotFound when no
	// pending account exists for the login and repository.ErrTokenMismatch
	// when the token differs; the pending record is left untouched in both
	// cases.
	Confirm(ctx context.Context, confirmation domain.AccountConfirmation) (domain.AccountCreatedEvent, error)
}
