package security

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if !strings.HasPrefix(hash, "argon2id$v=19$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, err := VerifyPassword("hunter22", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected the password to verify against its own hash")
	}

	ok, err = VerifyPassword("wrongpass", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error: %v", err)
	}
	if ok {
		t.Fatal("expected a wrong password to be rejected")
	}
}

func TestHashPasswordSalts(t *testing.T) {
	first, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	second, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if first == second {
		t.Fatal("expected different salts to yield different hashes")
	}
}

func TestVerifyPasswordEmptyInputs(t *testing.T) {
	if ok, err := VerifyPassword("", "whatever"); err != nil || ok {
		t.Fatalf("empty password must be rejected without error, ok=%v err=%v", ok, err)
	}
	if ok, err := VerifyPassword("password", ""); err != nil || ok {
		t.Fatalf("empty hash must be rejected without error, ok=%v err=%v", ok, err)
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("password", "not-an-encoded-hash"); err == nil {
		t.Fatal("expected an error for a malformed hash")
	}
	if _, err := VerifyPassword("password", "bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA"); err == nil {
		t.Fatal("expected an error for an unknown variant")
	}
}

func TestConfigureArgon2Validation(t *testing.T) {
	bad := []Argon2Config{
		{Memory: 1024, Iterations: 3, Parallelism: 4, SaltLength: 16, KeyLength: 32},
		{Memory: 64 * 1024, Iterations: 0, Parallelism: 4, SaltLength: 16, KeyLength: 32},
		{Memory: 64 * 1024, Iterations: 3, Parallelism: 0, SaltLength: 16, KeyLength: 32},
		{Memory: 64 * 1024, Iterations: 3, Parallelism: 4, SaltLength: 4, KeyLength: 32},
		{Memory: 64 * 1024, Iterations: 3, Parallelism: 4, SaltLength: 16, KeyLength: 8},
	}
	for _, cfg := range bad {
		if err := ConfigureArgon2(cfg); err == nil {
			t.Fatalf("expected %+v to be rejected", cfg)
		}
	}

	if err := ConfigureArgon2(defaultArgon2Config); err != nil {
		t.Fatalf("expected the default config to be accepted: %v", err)
	}
}

func TestTokenSecret(t *testing.T) {
	seen := make(map[int32]bool)
	for i := 0; i < 32; i++ {
		secret, err := TokenSecret()
		if err != nil {
			t.Fatalf("TokenSecret returned error: %v", err)
		}
		if secret < 0 {
			t.Fatalf("expected a non-negative secret, got %d", secret)
		}
		seen[secret] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected varied secrets across calls")
	}
}

func TestNewConfirmationToken(t *testing.T) {
	first := NewConfirmationToken()
	second := NewConfirmationToken()
	if first == "" || first == second {
		t.Fatalf("expected distinct non-empty tokens, got %q and %q", first, second)
	}
}
