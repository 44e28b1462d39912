package domain

import "regexp"

// ValidationError identifies a single syntactic defect in submitted credentials.
type ValidationError string

const (
	LoginEmpty          ValidationError = "login_empty"
	LoginTooShort       ValidationError = "login_too_short"
	LoginTooLong        ValidationError = "login_too_long"
	LoginInvalidChar    ValidationError = "login_invalid_char"
	PasswordEmpty       ValidationError = "password_empty"
	PasswordTooShort    ValidationError = "password_too_short"
	PasswordTooLong     ValidationError = "password_too_long"
	PasswordInvalidChar ValidationError = "password_invalid_char"
	EmailEmpty          ValidationError = "email_empty"
	EmailInvalid        ValidationError = "email_invalid"
)

const (
	loginMinLength    = 2
	loginMaxLength    = 30
	passwordMinLength = 2
	passwordMaxLength = 40
)

// Credentials is the raw login/password pair as received from the wire,
// unvalidated until passed through ValidateCredentials.
type Credentials struct {
	Login    string
	Password string
}

var (
	// Letters, digits and a restricted punctuation set. Anything else is rejected.
	allowedChars = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

	// RFC-5322-lite address grammar: dot-atom or quoted local part, dotted
	// domain labels or a bracketed IPv4/IPv6 literal. Lowercase only, as the
	// account system stores addresses normalized.
	emailPattern = regexp.MustCompile("^(?:[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*|\"(?:[\\x01-\\x08\\x0b\\x0c\\x0e-\\x1f\\x21\\x23-\\x5b\\x5d-\\x7f]|\\\\[\\x01-\\x09\\x0b\\x0c\\x0e-\\x7f])*\")@(?:(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?|\\[(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?|[a-z0-9-]*[a-z0-9]:(?:[\\x01-\\x08\\x0b\\x0c\\x0e-\\x1f\\x21-\\x5a\\x53-\\x7f]|\\\\[\\x01-\\x09\\x0b\\x0c\\x0e-\\x7f])+)\\])$")
)

// ValidateCredentials checks a login/password pair against the account rules
// and returns every defect found. An empty slice means the pair is well formed.
func ValidateCredentials(login, password string) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateField(login, loginMinLength, loginMaxLength,
		LoginEmpty, LoginTooShort, LoginTooLong, LoginInvalidChar)...)
	errs = append(errs, validateField(password, passwordMinLength, passwordMaxLength,
		PasswordEmpty, PasswordTooShort, PasswordTooLong, PasswordInvalidChar)...)
	return errs
}

// ValidateEmail checks an email address. An empty address yields EmailEmpty
// only, never EmailInvalid at the same time.
func ValidateEmail(email string) []ValidationError {
	if email == "" {
		return []ValidationError{EmailEmpty}
	}
	if !emailPattern.MatchString(email) {
		return []ValidationError{EmailInvalid}
	}
	return nil
}

// ValidateSignup validates a full signup request: credentials plus email.
func ValidateSignup(login, password, email string) []ValidationError {
	errs := ValidateCredentials(login, password)
	return append(errs, ValidateEmail(email)...)
}

func validateField(value string, min, max int, empty, tooShort, tooLong, invalidChar ValidationError) []ValidationError {
	var errs []ValidationError
	if value == "" {
		return append(errs, empty)
	}
	if len(value) < min {
		errs = append(errs, tooShort)
	}
	if len(value) > max {
		errs = append(errs, tooLong)
	}
	if !allowedChars.MatchString(value) {
		errs = append(errs, invalidChar)
	}
	return errs
}
