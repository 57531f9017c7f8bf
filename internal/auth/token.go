// Package auth holds the per-process session token.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// TokenBytes is the entropy of a session token.
const TokenBytes = 24

// Token is the shared secret for one running bridge. It is generated once and
// never rotated or persisted.
type Token string

// NewToken generates a URL-safe token from crypto/rand.
func NewToken() (Token, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return Token(base64.RawURLEncoding.EncodeToString(buf)), nil
}

// Verify compares presented against the token in constant time.
// An empty token never verifies.
func (t Token) Verify(presented string) bool {
	if t == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(t), []byte(presented)) == 1
}

// String returns the raw token value
func (t Token) String() string {
	return string(t)
}
