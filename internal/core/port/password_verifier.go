package port

import (
	"context"

	"github.com/arklim/game-platform-auth/internal/core/domain"
)

// PasswordVerifier checks a login/password pair against the credential store.
// Implementations return repository.ErrNotFound when the login is unknown;
// a mismatching password is reported through TokenVerification.Authenticated,
// not through the error.
type PasswordVerifier interface {
	Verify(ctx context.Context, login, password string) (domain.TokenVerification, error)
}
