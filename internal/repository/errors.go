package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate indicates a uniqueness constraint rejected the insert.
	ErrDuplicate = errors.New("repository: duplicate record")
	// ErrTokenMismatch indicates the presented confirmation token does not
	// match the stored one.
	ErrTokenMismatch = errors.New("repository: token mismatch")
)
