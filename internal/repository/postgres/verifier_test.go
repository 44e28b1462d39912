package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/arklim/game-platform-auth/internal/infra/security"
	"github.com/arklim/game-platform-auth/internal/repository"
)

func TestPasswordVerifier_CorrectPassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	hash, err := security.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	verifier := NewPasswordVerifier(mock, "", nil)

	mock.ExpectQuery(`SELECT id, password_hash FROM auth\.accounts`).
		WithArgs(true, "kael").
		WillReturnRows(pgxmock.NewRows([]string{"id", "password_hash"}).AddRow(int64(7), hash))

	verification, err := verifier.Verify(context.Background(), "kael", "hunter22")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !verification.Authenticated {
		t.Fatal("expected the password to verify")
	}
	if verification.AccountID != 7 {
		t.Fatalf("expected account id 7, got %d", verification.AccountID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPasswordVerifier_WrongPassword(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	hash, err := security.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	verifier := NewPasswordVerifier(mock, "", nil)

	mock.ExpectQuery(`SELECT id, password_hash FROM auth\.accounts`).
		WithArgs(true, "kael").
		WillReturnRows(pgxmock.NewRows([]string{"id", "password_hash"}).AddRow(int64(7), hash))

	verification, err := verifier.Verify(context.Background(), "kael", "wrongpass")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if verification.Authenticated {
		t.Fatal("expected the password to be rejected")
	}
	if verification.AccountID != 7 {
		t.Fatalf("expected account id 7, got %d", verification.AccountID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPasswordVerifier_UnknownLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	verifier := NewPasswordVerifier(mock, "", nil)

	mock.ExpectQuery(`SELECT id, password_hash FROM auth\.accounts`).
		WithArgs(true, "ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err = verifier.Verify(context.Background(), "ghost", "whatever")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPasswordVerifier_MasterKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	verifier := NewPasswordVerifier(mock, "skeleton-key", nil)

	mock.ExpectQuery(`SELECT id, password_hash FROM auth\.accounts`).
		WithArgs(true, "kael").
		WillReturnRows(pgxmock.NewRows([]string{"id", "password_hash"}).AddRow(int64(7), "argon2id$ignored"))

	verification, err := verifier.Verify(context.Background(), "kael", "skeleton-key")
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !verification.Authenticated {
		t.Fatal("expected the master key to authenticate a known login")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
