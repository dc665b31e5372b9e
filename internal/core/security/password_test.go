package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/users-api/internal/core/domain"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("secret_password")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret_password", hash)

	ok, err := h.Verify("secret_password", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_SaltsEveryCall(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("same-input")
	require.NoError(t, err)
	second, err := h.Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	for _, hash := range []string{first, second} {
		ok, err := h.Verify("same-input", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	h, err := NewBcryptHasher(bcrypt.MinCost + 1)
	require.NoError(t, err)

	hash, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
	assert.Equal(t, bcrypt.MinCost+1, h.Cost())
}

func TestBcryptHasher_DistinctPasswords(t *testing.T) {
	h := newTestHasher(t)
	passwords := []string{"alpha", "Alpha", "alpha ", "", "βeta", "alpha1"}

	hashes := make([]string, len(passwords))
	for i, p := range passwords {
		hash, err := h.Hash(p)
		require.NoError(t, err)
		hashes[i] = hash
	}

	for i, p := range passwords {
		for j, hash := range hashes {
			ok, err := h.Verify(p, hash)
			require.NoError(t, err)
			assert.Equal(t, i == j, ok, "verify(%q, hash(%q))", p, passwords[j])
		}
	}
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := newTestHasher(t)

	for _, stored := range []string{"", "invalid_hash", "$2a$10$" + strings.Repeat("x", 10)} {
		ok, err := h.Verify("password", stored)
		assert.False(t, ok)
		assert.ErrorIs(t, err, domain.ErrMalformedHash, "stored=%q", stored)
	}
}

func TestBcryptHasher_RejectsLongPasswords(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, domain.ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("a", 72))
	assert.NoError(t, err)
}

func TestBcryptHasher_LongPasswordNeverMatches(t *testing.T) {
	h := newTestHasher(t)
	base := strings.Repeat("a", 72)

	hash, err := h.Hash(base)
	require.NoError(t, err)

	ok, err := h.Verify(base+"tail", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewBcryptHasher_CostRange(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost - 1)
	assert.Error(t, err)

	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	assert.Error(t, err)
}
