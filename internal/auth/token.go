package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// APIKeyPrefix marks externally issued API keys so they are recognizable in
// Authorization headers and support tickets.
const APIKeyPrefix = "tp_"

// NewToken generates an opaque token and the hex SHA-256 hash under which it
// is persisted. The plaintext leaves the process exactly once (cookie or
// email link) and is never stored.
func NewToken() (token, hash string, err error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate token: %w", err)
	}
	token = base64.RawURLEncoding.EncodeToString(raw)
	return token, HashToken(token), nil
}

// NewAPIKey generates a prefixed API key and its storage hash.
func NewAPIKey() (key, hash string, err error) {
	token, _, err := NewToken()
	if err != nil {
		return "", "", err
	}
	key = APIKeyPrefix + token
	return key, HashToken(key), nil
}

// HashToken returns the hex SHA-256 digest of a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
