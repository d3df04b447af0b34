package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

// GenerateCode returns a 6-digit numeric code used for email verification and
// password reset.
func GenerateCode() string {
	var b [4]byte
	rand.Read(b[:])
	n := uint(b[0])<<24 | uint(b[1])<<16 | uint(b[2])<<8 | uint(b[3])
	return fmt.Sprintf("%06d", n%1000000)
}

// GenerateTokenID returns a random identifier used to key refresh tokens.
func GenerateTokenID() string {
	return uuid.New().String()
}
