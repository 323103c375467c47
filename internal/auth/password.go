package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	apperrors "storefront/internal/errors"
)

const bcryptCost = 10

// PasswordHasher hashes and verifies passwords with bcrypt. The work factor
// is tunable through the cost; cost 10 keeps hashing expensive enough to
// resist brute force while staying affordable per request.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the default cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// Hash returns the salted one-way hash of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrHashing, err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. bcrypt compares without
// leaking where the mismatch occurs; a mismatch is false, never an error.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
