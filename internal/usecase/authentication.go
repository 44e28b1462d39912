package usecase

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/game-platform-auth/internal/core/domain"
	"github.com/arklim/game-platform-auth/internal/core/port"
	"github.com/arklim/game-platform-auth/internal/infra/security"
	"github.com/arklim/game-platform-auth/internal/repository"
)

const (
	// DefaultBanThreshold is the number of consecutive failures that triggers
	// a temporary ban.
	DefaultBanThreshold = 5
	// DefaultBanDuration is how long a banned login stays suspended.
	DefaultBanDuration = 15 * time.Second

	lockShards = 64
)

// AuthenticationService owns the stateful authentication logic: per-login
// failure counters and bans (behind port.AttemptStore) and the cache of
// issued session tokens. Read-modify-write sequences for a single login are
// serialized by a lock table sharded on the login, so attempts for different
// logins proceed in parallel.
type AuthenticationService struct {
	verifier     port.PasswordVerifier
	attempts     port.AttemptStore
	banThreshold int
	banDuration  time.Duration
	logger       *zap.Logger
	now          func() time.Time

	locks [lockShards]sync.Mutex

	tokensMu sync.RWMutex
	tokens   map[domain.AccountID]domain.Token
}

// NewAuthenticationService constructs the engine with the given collaborators.
// Threshold and duration fall back to the platform defaults when not positive.
func NewAuthenticationService(verifier port.PasswordVerifier, attempts port.AttemptStore, banThreshold int, banDuration time.Duration, logger *zap.Logger) *AuthenticationService {
	if banThreshold <= 0 {
		banThreshold = DefaultBanThreshold
	}
	if banDuration <= 0 {
		banDuration = DefaultBanDuration
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthenticationService{
		verifier:     verifier,
		attempts:     attempts,
		banThreshold: banThreshold,
		banDuration:  banDuration,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
		tokens:       make(map[domain.AccountID]domain.Token),
	}
}

// WithClock overrides the engine clock for deterministic testing.
func (s *AuthenticationService) WithClock(clock func() time.Time) *AuthenticationService {
	if clock != nil {
		s.now = clock
	}
	return s
}

// Authenticate evaluates a login/password pair and returns a token carrying
// the outcome. Expected outcomes (unknown login, wrong password, ban) are
// statuses, never errors; a non-nil error means a collaborator failed and no
// status could be established.
func (s *AuthenticationService) Authenticate(ctx context.Context, credentials domain.Credentials) (domain.Token, error) {
	// Malformed input is reported as an unknown account without consulting
	// the verifier or touching any throttling state.
	if len(domain.ValidateCredentials(credentials.Login, credentials.Password)) > 0 {
		return domain.NotFoundToken(), nil
	}

	login := credentials.Login
	unlock := s.lockLogin(login)
	defer unlock()

	now := s.now()

	until, banned, err := s.attempts.BannedUntil(ctx, login)
	if err != nil {
		return domain.Token{}, fmt.Errorf("check ban state for %q: %w", login, err)
	}
	if banned && now.Before(until) {
		// Ban recovery: reading a ban resets the counter. The record itself
		// stays and is bypassed once expired.
		if err := s.attempts.ResetFailures(ctx, login); err != nil {
			s.logger.Warn("reset failure counter", zap.String("login", login), zap.Error(err))
		}
		return domain.BannedToken(), nil
	}

	verification, err := s.verifier.Verify(ctx, login, credentials.Password)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFoundToken(), nil
	}
	if err != nil {
		return domain.Token{}, fmt.Errorf("verify credentials for %q: %w", login, err)
	}

	count, err := s.attempts.AddFailure(ctx, login)
	if err != nil {
		s.logger.Warn("record authentication attempt", zap.String("login", login), zap.Error(err))
	}

	if !verification.Authenticated {
		// Equality, not >=: a counter racing past the threshold stays
		// unbanned. Kept as the historical trigger.
		if count == s.banThreshold {
			if err := s.attempts.Ban(ctx, login, now.Add(s.banDuration)); err != nil {
				s.logger.Warn("record ban", zap.String("login", login), zap.Error(err))
			}
		}
		return domain.AuthenticationFailedToken(), nil
	}

	token, err := s.authenticatedToken(verification.AccountID, now)
	if err != nil {
		return domain.Token{}, err
	}

	if err := s.attempts.ResetFailures(ctx, login); err != nil {
		s.logger.Warn("reset failure counter", zap.String("login", login), zap.Error(err))
	}

	return token, nil
}

// GetAuthenticated returns the cached token for the account, or a not-found
// token. Never mutates state.
func (s *AuthenticationService) GetAuthenticated(id domain.AccountID) domain.Token {
	s.tokensMu.RLock()
	defer s.tokensMu.RUnlock()
	if token, ok := s.tokens[id]; ok {
		return token
	}
	return domain.NotFoundToken()
}

// authenticatedToken reuses the cached token for the account when present,
// otherwise mints and caches a fresh one.
func (s *AuthenticationService) authenticatedToken(id domain.AccountID, issuedAt time.Time) (domain.Token, error) {
	s.tokensMu.Lock()
	defer s.tokensMu.Unlock()

	if token, ok := s.tokens[id]; ok {
		return token, nil
	}

	secret, err := security.TokenSecret()
	if err != nil {
		return domain.Token{}, fmt.Errorf("generate token secret: %w", err)
	}

	token := domain.AuthenticatedToken(id, issuedAt, secret)
	s.tokens[id] = token
	return token, nil
}

func (s *AuthenticationService) lockLogin(login string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(login))
	shard := &s.locks[h.Sum32()%lockShards]
	shard.Lock()
	return shard.Unlock
}
