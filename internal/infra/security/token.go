package security

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// TokenSecret returns a random non-negative 31-bit session token secret.
func TokenSecret() (int32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("generate token secret: %w", err)
	}
	return int32(binary.BigEndian.Uint32(buf[:]) & 0x7fffffff), nil
}

// NewConfirmationToken returns a globally unique confirmation token for a
// pending account.
func NewConfirmationToken() string {
	return uuid.NewString()
}
