package auth

import (
	"errors"

	"github.com/dmitrijs2005/crmauth/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts. Longer input is
// rejected rather than truncated.
const MaxPasswordBytes = 72

// PasswordHasher wraps bcrypt with a fixed work factor. The digest embeds
// cost and salt, so Verify works for hashes made with any cost.
//
// Both operations are slow on purpose and cannot be cancelled.
type PasswordHasher struct {
	cost  int
	dummy []byte
}

// NewPasswordHasher clamps cost into bcrypt's accepted range; 0 selects
// bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}

	h := &PasswordHasher{cost: cost}
	// Hash of a random value nobody knows; compared against for unknown emails.
	h.dummy, _ = bcrypt.GenerateFromPassword(common.GenerateRandByteArray(32), cost)
	return h
}

func (h *PasswordHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches digest. A malformed digest is a
// mismatch, not an error.
func (h *PasswordHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// VerifyDummy spends the same time as a real Verify and always fails. Login
// calls it when the email is unknown.
func (h *PasswordHasher) VerifyDummy(plain string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plain))
	return false
}
