package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.NoError(t, h.Compare(hash, "secret1"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrMismatchedPassword)
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	err := NewPasswordHasher(bcrypt.MinCost).Compare("not-a-hash", "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatchedPassword)
}

func TestNewPasswordHasher_CostBounds(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).Cost())
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(99).Cost())
	assert.Equal(t, 12, NewPasswordHasher(12).Cost())
}

func TestPasswordHasher_LongPasswordTruncated(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	long := strings.Repeat("a", 80)

	hash, err := h.Hash(long)
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, long))
	assert.NoError(t, h.Compare(hash, long[:MaxPasswordBytes]))
	assert.ErrorIs(t, h.Compare(hash, long[:MaxPasswordBytes-1]), ErrMismatchedPassword)
}
