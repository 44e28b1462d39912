package domain

import (
	"strings"
	"testing"
)

func TestValidateCredentialsAccepts(t *testing.T) {
	cases := []struct {
		name     string
		login    string
		password string
	}{
		{"minimal", "ab", "xy"},
		{"typical", "player_one", "s3cret-pass"},
		{"max length", strings.Repeat("a", 30), strings.Repeat("b", 40)},
		{"punctuation", "a.b-c_d", "p.q-r_s"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if errs := ValidateCredentials(tc.login, tc.password); len(errs) != 0 {
				t.Fatalf("expected no validation errors, got %v", errs)
			}
		})
	}
}

func TestValidateCredentialsRejects(t *testing.T) {
	cases := []struct {
		name     string
		login    string
		password string
		want     []ValidationError
	}{
		{"empty login", "", "password", []ValidationError{LoginEmpty}},
		{"empty password", "login", "", []ValidationError{PasswordEmpty}},
		{"both empty", "", "", []ValidationError{LoginEmpty, PasswordEmpty}},
		{"short login", "a", "password", []ValidationError{LoginTooShort}},
		{"long login", strings.Repeat("a", 31), "password", []ValidationError{LoginTooLong}},
		{"short password", "login", "x", []ValidationError{PasswordTooShort}},
		{"long password", "login", strings.Repeat("b", 41), []ValidationError{PasswordTooLong}},
		{"login bad char", "bad login", "password", []ValidationError{LoginInvalidChar}},
		{"password bad char", "login", "pass word", []ValidationError{PasswordInvalidChar}},
		{"short and invalid", "!", "password", []ValidationError{LoginTooShort, LoginInvalidChar}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateCredentials(tc.login, tc.password)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i, err := range tc.want {
				if got[i] != err {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestValidateCredentialsEmptyNeverReportsLength(t *testing.T) {
	for _, err := range ValidateCredentials("", "") {
		if err == LoginTooShort || err == PasswordTooShort {
			t.Fatalf("empty field must report only the empty error, got %v", err)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"john.doe@example.com",
		"a+b@sub.domain.org",
		"x@y.co",
	}
	for _, email := range valid {
		if errs := ValidateEmail(email); len(errs) != 0 {
			t.Fatalf("expected %q to be valid, got %v", email, errs)
		}
	}

	invalid := []string{
		"bademail",
		"missing@domain",
		"@example.com",
		"user@",
		"two@@example.com",
		"UPPER@EXAMPLE.COM",
	}
	for _, email := range invalid {
		errs := ValidateEmail(email)
		if len(errs) != 1 || errs[0] != EmailInvalid {
			t.Fatalf("expected %q to yield EmailInvalid, got %v", email, errs)
		}
	}
}

func TestValidateEmailEmpty(t *testing.T) {
	errs := ValidateEmail("")
	if len(errs) != 1 || errs[0] != EmailEmpty {
		t.Fatalf("expected EmailEmpty only, got %v", errs)
	}
}

func TestValidateSignup(t *testing.T) {
	if errs := ValidateSignup("player", "password", "player@example.com"); len(errs) != 0 {
		t.Fatalf("expected clean signup, got %v", errs)
	}

	errs := ValidateSignup("a", "", "bademail")
	want := map[ValidationError]bool{LoginTooShort: true, PasswordEmpty: true, EmailInvalid: true}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %v", len(want), errs)
	}
	for _, err := range errs {
		if !want[err] {
			t.Fatalf("unexpected error %v", err)
		}
	}
}
