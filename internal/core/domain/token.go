package domain

import "time"

// AccountID is the stable identifier of a permanent account, assigned by the
// account store when a pending account is promoted.
type AccountID int64

// TokenStatus enumerates the possible outcomes of an authentication request.
type TokenStatus string

const (
	StatusAuthenticated    TokenStatus = "AUTHENTICATED"
	StatusNotAuthenticated TokenStatus = "NOT_AUTHENTICATED"
	StatusNotFound         TokenStatus = "NOT_FOUND"
	StatusBanned           TokenStatus = "BANNED"
)

// Token is the proof-of-authenticated-state object returned to callers.
// AccountID, IssuedAt and Secret are only meaningful when Status is
// AUTHENTICATED. Tokens are immutable once created; identity is the
// (AccountID, Secret) pair.
type Token struct {
	Status    TokenStatus
	AccountID AccountID
	IssuedAt  time.Time
	Secret    int32
}

// AuthenticatedToken builds a token for a successfully authenticated account.
func AuthenticatedToken(id AccountID, issuedAt time.Time, secret int32) Token {
	return Token{Status: StatusAuthenticated, AccountID: id, IssuedAt: issuedAt, Secret: secret}
}

// AuthenticationFailedToken reports a password mismatch.
func AuthenticationFailedToken() Token {
	return Token{Status: StatusNotAuthenticated}
}

// NotFoundToken reports an unknown or malformed login.
func NotFoundToken() Token {
	return Token{Status: StatusNotFound}
}

// BannedToken reports a login temporarily suspended after repeated failures.
func BannedToken() Token {
	return Token{Status: StatusBanned}
}

// TokenVerification is the password verifier's answer for a known account.
type TokenVerification struct {
	AccountID     AccountID
	Authenticated bool
}
