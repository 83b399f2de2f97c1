package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a password into the value kept on the profile.
type Hasher struct {
	// Enabled stores bcrypt hashes. When false passwords are kept as typed,
	// which is what older documents contain.
	Enabled bool
	Cost    int
}

// NewHasher returns a bcrypt hasher at the default cost.
func NewHasher(enabled bool) Hasher {
	return Hasher{Enabled: enabled, Cost: bcrypt.DefaultCost}
}

// Hash returns the stored form of password.
func (h Hasher) Hash(password string) (string, error) {
	if !h.Enabled {
		return password, nil
	}
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// IsHashed reports whether stored looks like a bcrypt hash.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// Verify checks password against a stored hash or a plaintext password
// from an imported document.
func Verify(stored, password string) bool {
	if stored == "" {
		return false
	}
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}
