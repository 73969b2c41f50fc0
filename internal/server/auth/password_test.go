package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	digest, err := h.Hash("correct")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$2a$04$"), digest)

	assert.True(t, h.Verify("correct", digest))
	assert.False(t, h.Verify("wrong", digest))
	assert.False(t, h.Verify("correct", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("correct", ""))
}

func TestPasswordHasher_SaltsEveryHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same", a))
	assert.True(t, h.Verify("same", b))
}

func TestPasswordHasher_VerifiesOtherCosts(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost+1)
	require.NoError(t, err)

	assert.True(t, NewPasswordHasher(bcrypt.MinCost).Verify("pw", string(legacy)))
}

func TestPasswordHasher_Rejects(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	_, err := h.Hash("")
	assert.Error(t, err)

	_, err = h.Hash(strings.Repeat("x", MaxPasswordBytes+1))
	assert.Error(t, err, "bcrypt only accepts up to 72 bytes")
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, bcrypt.DefaultCost},
		{1, bcrypt.MinCost},
		{bcrypt.MinCost + 1, bcrypt.MinCost + 1},
	}

	for _, tt := range tests {
		digest, err := NewPasswordHasher(tt.in).Hash("pw")
		require.NoError(t, err)
		cost, err := bcrypt.Cost([]byte(digest))
		require.NoError(t, err)
		assert.Equal(t, tt.want, cost, "cost %d", tt.in)
	}
}

func TestPasswordHasher_VerifyDummy(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	assert.False(t, h.VerifyDummy("anything"))
	assert.False(t, h.VerifyDummy(""))
}
