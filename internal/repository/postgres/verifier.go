package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/arklim/game-platform-auth/internal/core/domain"
	"github.com/arklim/game-platform-auth/internal/core/port"
	"github.com/arklim/game-platform-auth/internal/infra/security"
	"github.com/arklim/game-platform-auth/internal/repository"
)

// PasswordVerifier implements port.PasswordVerifier against the accounts
// table. An optional master key accepts any known login presenting it; the
// use is logged. Leave it empty outside of support scenarios.
type PasswordVerifier struct {
	db        pgPool
	builder   squirrel.StatementBuilderType
	masterKey string
	logger    *zap.Logger
}

// NewPasswordVerifier wires a PostgreSQL-backed password verifier.
func NewPasswordVerifier(db pgPool, masterKey string, logger *zap.Logger) *PasswordVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PasswordVerifier{
		db:        db,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		masterKey: masterKey,
		logger:    logger,
	}
}

// Verify looks up the active account for the login and checks the password
// against the stored hash.
func (v *PasswordVerifier) Verify(ctx context.Context, login, password string) (domain.TokenVerification, error) {
	stmt, args, err := v.builder.
		Select("id", "password_hash").
		From("auth.accounts").
		Where(squirrel.Eq{"login": login, "active": true}).
		ToSql()
	if err != nil {
		return domain.TokenVerification{}, fmt.Errorf("build select credentials sql: %w", err)
	}

	var (
		id           int64
		passwordHash string
	)
	if err := v.db.QueryRow(ctx, stmt, args...).Scan(&id, &passwordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TokenVerification{}, repository.ErrNotFound
		}
		return domain.TokenVerification{}, fmt.Errorf("scan credentials: %w", err)
	}

	if v.masterKey != "" && password == v.masterKey {
		v.logger.Warn("login with master key", zap.String("login", login))
		return domain.TokenVerification{AccountID: domain.AccountID(id), Authenticated: true}, nil
	}

	ok, err := security.VerifyPassword(password, passwordHash)
	if err != nil {
		return domain.TokenVerification{}, fmt.Errorf("verify password: %w", err)
	}

	return domain.TokenVerification{AccountID: domain.AccountID(id), Authenticated: ok}, nil
}

var _ port.PasswordVerifier = (*PasswordVerifier)(nil)
