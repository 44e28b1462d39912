package domain

import "time"

// TemporaryAccount is a signup request waiting to become a pending account.
// The password is still in clear at this stage and must never be persisted
// or logged as is.
type TemporaryAccount struct {
	Login    string
	Password string
	Email    string
	Language string
}

// PendingAccount mirrors the persisted representation of an unconfirmed
// signup. The confirmation token must match before promotion.
type PendingAccount struct {
	ID                int64
	Login             string
	PasswordHash      string
	Email             string
	ConfirmationToken string
	CreatedAt         time.Time
}

// Account mirrors the persisted representation of a permanent account.
type Account struct {
	ID           AccountID
	Login        string
	PasswordHash string
	Email        string
	Active       bool
}

// AccountConfirmation carries a presented confirmation token for a login.
type AccountConfirmation struct {
	Login string
	Token string
}

// AccountCreatedEvent is emitted once a pending account has been promoted.
type AccountCreatedEvent struct {
	Login     string
	AccountID AccountID
}

// AccountCreationResult reports every defect of an account creation request
// at once. A zero value means the pending account was created.
type AccountCreationResult struct {
	InvalidLogin    bool
	InvalidPassword bool
	InvalidEmail    bool
	EmailMissing    bool
	AccountExisting bool
	EmailExisting   bool
	TechnicalIssue  bool
}

// HasError reports whether any defect flag is set.
func (r AccountCreationResult) HasError() bool {
	return r.InvalidLogin || r.InvalidPassword || r.InvalidEmail ||
		r.EmailMissing || r.AccountExisting || r.EmailExisting || r.TechnicalIssue
}

// ApplyValidationError maps a syntactic validation error onto the
// corresponding result flag.
func (r *AccountCreationResult) ApplyValidationError(err ValidationError) {
	switch err {
	case LoginEmpty, LoginTooShort, LoginTooLong, LoginInvalidChar:
		r.InvalidLogin = true
	case PasswordEmpty, PasswordTooShort, PasswordTooLong, PasswordInvalidChar:
		r.InvalidPassword = true
	case EmailEmpty:
		r.EmailMissing = true
	case EmailInvalid:
		r.InvalidEmail = true
	}
}
