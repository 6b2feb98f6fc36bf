package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !hasher.Verify("password123", hash) {
		t.Error("correct password rejected")
	}
	if hasher.Verify("wrong-password", hash) {
		t.Error("wrong password accepted")
	}
	if hasher.Verify("password123", "not-a-hash") {
		t.Error("garbage hash accepted")
	}
}

func TestTokenHashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	// JWTs are far longer than bcrypt's 72-byte input limit; the
	// pre-digest must make them hashable anyway.
	token := strings.Repeat("eyJhbGciOiJIUzI1NiJ9.", 20)

	hash, err := hasher.HashToken(token)
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}
	if !hasher.VerifyToken(token, hash) {
		t.Error("correct token rejected")
	}
	if hasher.VerifyToken(token+"x", hash) {
		t.Error("tampered token accepted")
	}
}
