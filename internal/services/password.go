package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns passwords into stored credentials and checks them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches the stored credential.
	Verify(stored, password string) bool
	// NeedsRehash reports whether stored should be replaced by a fresh hash.
	NeedsRehash(stored string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. Stored values that are
// not bcrypt hashes are treated as legacy plaintext credentials.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given bcrypt cost. Out of range
// costs fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt hash of password. Passwords of any length are
// accepted.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(digest(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify checks password against a bcrypt hash, or against a legacy
// plaintext credential in constant time.
func (h *BcryptHasher) Verify(stored, password string) bool {
	if !isBcryptHash(stored) {
		return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), digest(password)) == nil
}

// NeedsRehash reports whether stored is plaintext or was hashed with a
// different cost than h.
func (h *BcryptHasher) NeedsRehash(stored string) bool {
	cost, err := bcrypt.Cost([]byte(stored))
	return err != nil || cost != h.cost
}

// digest maps a password of any length onto 44 bytes, below bcrypt's
// 72-byte input limit.
func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

func isBcryptHash(stored string) bool {
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}
