// Package security holds the stateless credential helpers: password
// hashing, refresh-token hashing, and verification-code generation.
package security

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher performs one-way hashing and verification for passwords
// and refresh tokens. The cost factor is fixed at construction.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher. A zero cost falls back to
// bcrypt's default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns a salted bcrypt hash of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. Any mismatch or
// malformed hash yields false, never an error.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// HashToken hashes a refresh token for storage. Tokens exceed bcrypt's
// 72-byte input limit, so the token is pre-digested with SHA-256 before
// hashing.
func (h *PasswordHasher) HashToken(token string) (string, error) {
	return h.Hash(digestToken(token))
}

// VerifyToken reports whether the presented token matches the stored
// token hash.
func (h *PasswordHasher) VerifyToken(token, hash string) bool {
	return h.Verify(digestToken(token), hash)
}

func digestToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawStdEncoding.EncodeToString(sum[:])
}
