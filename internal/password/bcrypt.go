// Package password provides bcrypt-backed password hashing.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/aboh-server/internal/model"
)

// MaxLength is the longest password bcrypt accepts, in bytes.
const MaxLength = 72

// Bcrypt implements model.PasswordHasher.
type Bcrypt struct {
	cost int
}

var _ model.PasswordHasher = (*Bcrypt)(nil)

// NewBcrypt creates a hasher with the given cost. Out-of-range costs fall back
// to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns a salted bcrypt hash of password.
func (b *Bcrypt) Hash(password string) (string, error) {
	if password == "" {
		return "", model.NewValidationError("password", "must not be empty")
	}
	if len(password) > MaxLength {
		return "", model.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", MaxLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash is an error;
// a mismatch is not. Passwords longer than MaxLength never match since bcrypt
// only compares the first MaxLength bytes.
func (b *Bcrypt) Verify(password, hash string) (bool, error) {
	if len(password) > MaxLength {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
}
