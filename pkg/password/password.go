// Package password hashes and verifies credentials with bcrypt.
package password

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmpty is returned when the credential is blank after trimming.
var ErrEmpty = errors.New("password cannot be empty")

// Hasher hashes with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher; out-of-range costs fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash trims the input and returns its bcrypt hash.
func (h *Hasher) Hash(plain string) (string, error) {
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return "", ErrEmpty
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches the stored hash.
func (h *Hasher) Verify(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(plain))) == nil
}
