// Package utils holds small helpers shared across layers: token generation
// and hashing, email normalization, and the JWT manager.
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"strings"
)

// GenerateRandomToken returns size random bytes base64url-encoded, safe to
// embed in a verification link. With size 32 the token carries 256 bits of
// entropy.
func GenerateRandomToken(size int) (string, error) {
	raw := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashToken is the at-rest form of a token; only hashes touch the database,
// so a leaked table row cannot be replayed as a link.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(digest[:])
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
