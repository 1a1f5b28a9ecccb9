package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost is the default cost for bcrypt hashing.
	DefaultBcryptCost = 12
)

// PasswordHasher provides password hashing and verification functionality.
type PasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewPasswordHasher creates a new PasswordHasher with the given bcrypt cost.
// Costs outside bcrypt's accepted range fall back to DefaultBcryptCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{
		cost: cost,
	}
}

// Cost returns the bcrypt cost used for new hashes.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash generates a bcrypt hash of the given password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify checks if the provided password matches the hash.
// Any failure, including a malformed hash, is reported as a mismatch.
func (h *PasswordHasher) Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// VerifyDummy runs a comparison against a throwaway hash of the same cost so
// that a lookup miss costs as much as a wrong password. It always fails.
func (h *PasswordHasher) VerifyDummy(password string) bool {
	h.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), h.cost)
		if err == nil {
			h.dummyHash = hash
		}
	})
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
	return false
}
