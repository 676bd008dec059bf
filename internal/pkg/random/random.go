package random

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// Token creates a cryptographically secure URL-safe random token.
func Token(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Code creates a 6-digit numeric security code, zero-padded.
func Code() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
