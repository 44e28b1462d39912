package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/arklim/game-platform-auth/internal/core/domain"
	"github.com/arklim/game-platform-auth/internal/core/port"
	"github.com/arklim/game-platform-auth/internal/infra/security"
	"github.com/arklim/game-platform-auth/internal/repository"
)

// AccountRepository implements port.AccountStore using PostgreSQL.
type AccountRepository struct {
	db      pgPool
	builder squirrel.StatementBuilderType
	logger  *zap.Logger
}

// NewAccountRepository wires a PostgreSQL-backed account store.
func NewAccountRepository(db pgPool, logger *zap.Logger) *AccountRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountRepository{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		logger:  logger,
	}
}

// LoginExists reports whether the login belongs to an active permanent
// account or a pending one.
func (r *AccountRepository) LoginExists(ctx context.Context, login string) (bool, error) {
	exists, err := r.exists(ctx, "auth.accounts", squirrel.Eq{"login": login, "active": true})
	if err != nil {
		return false, fmt.Errorf("search account by login: %w", err)
	}
	if exists {
		return true, nil
	}

	exists, err = r.exists(ctx, "auth.pending_accounts", squirrel.Eq{"login": login})
	if err != nil {
		return false, fmt.Errorf("search pending account by login: %w", err)
	}
	return exists, nil
}

// EmailExists reports whether the email belongs to an active permanent
// account or a pending one.
func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := r.exists(ctx, "auth.accounts", squirrel.Eq{"email": email, "active": true})
	if err != nil {
		return false, fmt.Errorf("search account by email: %w", err)
	}
	if exists {
		return true, nil
	}

	exists, err = r.exists(ctx, "auth.pending_accounts", squirrel.Eq{"email": email})
	if err != nil {
		return false, fmt.Errorf("search pending account by email: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) exists(ctx context.Context, table string, where squirrel.Eq) (bool, error) {
	stmt, args, err := r.builder.Select("id").From(table).Where(where).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("build select sql: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CreatePending persists an unconfirmed signup with a hashed password.
func (r *AccountRepository) CreatePending(ctx context.Context, account domain.TemporaryAccount, token string) error {
	passwordHash, err := security.HashPassword(account.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	stmt, args, err := r.builder.Insert("auth.pending_accounts").
		Columns("login", "password_hash", "email", "check_token", "created_at").
		Values(account.Login, passwordHash, account.Email, token, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert pending account sql: %w", err)
	}

	if _, err := r.db.Exec(ctx, stmt, args...); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert pending account: %w", err)
	}

	r.logger.Debug("pending account created", zap.String("login", account.Login))
	return nil
}

// Confirm promotes the pending account for the login into a permanent one.
// The lookup, insert, delete, and id read-back all commit or roll back
// together, so a concurrent confirmation of the same login observes either
// the pending record or the permanent account, never a partial state.
func (r *AccountRepository) Confirm(ctx context.Context, confirmation domain.AccountConfirmation) (domain.AccountCreatedEvent, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.AccountCreatedEvent{}, fmt.Errorf("begin confirm transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pending, err := r.pendingByLogin(ctx, tx, confirmation.Login)
	if err != nil {
		return domain.AccountCreatedEvent{}, err
	}

	if pending.ConfirmationToken != confirmation.Token {
		return domain.AccountCreatedEvent{}, repository.ErrTokenMismatch
	}

	insertStmt, insertArgs, err := r.builder.Insert("auth.accounts").
		Columns("login", "password_hash", "email", "active").
		Values(pending.Login, pending.PasswordHash, pending.Email, true).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return domain.AccountCreatedEvent{}, fmt.Errorf("build insert account sql: %w", err)
	}

	var accountID int64
	if err := tx.QueryRow(ctx, insertStmt, insertArgs...).Scan(&accountID); err != nil {
		if isUniqueViolation(err) {
			return domain.AccountCreatedEvent{}, repository.ErrDuplicate
		}
		return domain.AccountCreatedEvent{}, fmt.Errorf("insert account: %w", err)
	}

	deleteStmt, deleteArgs, err := r.builder.Delete("auth.pending_accounts").
		Where(squirrel.Eq{"id": pending.ID}).
		ToSql()
	if err != nil {
		return domain.AccountCreatedEvent{}, fmt.Errorf("build delete pending account sql: %w", err)
	}

	if _, err := tx.Exec(ctx, deleteStmt, deleteArgs...); err != nil {
		return domain.AccountCreatedEvent{}, fmt.Errorf("delete pending account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.AccountCreatedEvent{}, fmt.Errorf("commit confirm transaction: %w", err)
	}

	return domain.AccountCreatedEvent{
		Login:     pending.Login,
		AccountID: domain.AccountID(accountID),
	}, nil
}

func (r *AccountRepository) pendingByLogin(ctx context.Context, exec pgExecutor, login string) (domain.PendingAccount, error) {
	stmt, args, err := r.builder.
		Select("id", "login", "password_hash", "email", "check_token", "created_at").
		From("auth.pending_accounts").
		Where(squirrel.Eq{"login": login}).
		ToSql()
	if err != nil {
		return domain.PendingAccount{}, fmt.Errorf("build select pending account sql: %w", err)
	}

	var pending domain.PendingAccount
	if err := exec.QueryRow(ctx, stmt, args...).Scan(
		&pending.ID,
		&pending.Login,
		&pending.PasswordHash,
		&pending.Email,
		&pending.ConfirmationToken,
		&pending.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PendingAccount{}, repository.ErrNotFound
		}
		return domain.PendingAccount{}, fmt.Errorf("scan pending account: %w", err)
	}

	return pending, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

var _ port.AccountStore = (*AccountRepository)(nil)
