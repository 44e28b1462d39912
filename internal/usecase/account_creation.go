package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/arklim/game-platform-auth/internal/core/domain"
	"github.com/arklim/game-platform-auth/internal/core/port"
	"github.com/arklim/game-platform-auth/internal/infra/logger"
	"github.com/arklim/game-platform-auth/internal/infra/security"
	"github.com/arklim/game-platform-auth/internal/repository"
)

// AccountService handles the two-phase account lifecycle: creation of a
// pending account awaiting email confirmation, and its promotion into a
// permanent one.
type AccountService struct {
	store         port.AccountStore
	mailer        port.AccountMailer
	notifications port.NotificationPublisher
	logger        *zap.Logger
}

// NewAccountService constructs the account lifecycle service.
func NewAccountService(store port.AccountStore, mailer port.AccountMailer, notifications port.NotificationPublisher, log *zap.Logger) *AccountService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{
		store:         store,
		mailer:        mailer,
		notifications: notifications,
		logger:        log,
	}
}

// Create validates a signup request and, when clean, persists a pending
// account and sends the confirmation email. Every defect is reported through
// the result flags; nothing is persisted when any flag is set. Storage or
// mail failures surface as the technical-issue flag only.
func (s *AccountService) Create(ctx context.Context, signup domain.TemporaryAccount) domain.AccountCreationResult {
	var result domain.AccountCreationResult

	for _, validationErr := range domain.ValidateSignup(signup.Login, signup.Password, signup.Email) {
		result.ApplyValidationError(validationErr)
	}

	if signup.Email != "" && !result.InvalidEmail {
		exists, err := s.store.EmailExists(ctx, signup.Email)
		if err != nil {
			s.logger.Error("check email uniqueness",
				zap.String("login", signup.Login),
				zap.String("email", logger.MaskEmail(signup.Email)),
				zap.Error(err))
			result.TechnicalIssue = true
			return result
		}
		if exists {
			result.EmailExisting = true
		}
	}

	exists, err := s.store.LoginExists(ctx, signup.Login)
	if err != nil {
		s.logger.Error("check login uniqueness", zap.String("login", signup.Login), zap.Error(err))
		result.TechnicalIssue = true
		return result
	}
	if exists {
		result.AccountExisting = true
	}

	if result.HasError() {
		return result
	}

	token := security.NewConfirmationToken()

	if err := s.store.CreatePending(ctx, signup, token); err != nil {
		// The pre-checks above are only an optimization: two concurrent
		// signups can both pass them, and the store's uniqueness constraint
		// settles the race here. A lost race surfaces as a technical issue
		// like any other persistence failure.
		s.logger.Error("persist pending account", zap.String("login", signup.Login), zap.Error(err))
		result.TechnicalIssue = true
		return result
	}

	if err := s.mailer.SendConfirmation(ctx, signup.Login, signup.Email, signup.Language, token); err != nil {
		s.logger.Error("send confirmation email",
			zap.String("login", signup.Login),
			zap.String("email", logger.MaskEmail(signup.Email)),
			zap.Error(err))
		result.TechnicalIssue = true
	}

	return result
}

// Confirm verifies a presented confirmation token and promotes the pending
// account. Fire and forget: an unknown login or a mismatching token is logged
// and leaves state untouched, so the caller can retry with the right token.
func (s *AccountService) Confirm(ctx context.Context, confirmation domain.AccountConfirmation) {
	event, err := s.store.Confirm(ctx, confirmation)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Warn("confirmation for unknown pending account", zap.String("login", confirmation.Login))
		return
	case errors.Is(err, repository.ErrTokenMismatch):
		s.logger.Warn("confirmation with invalid token", zap.String("login", confirmation.Login))
		return
	case err != nil:
		s.logger.Error("confirm account", zap.String("login", confirmation.Login), zap.Error(err))
		return
	}

	if err := s.notifications.PublishAccountCreated(ctx, event); err != nil {
		s.logger.Error("publish account created",
			zap.String("login", event.Login),
			zap.Int64("account_id", int64(event.AccountID)),
			zap.Error(err))
	}
}
