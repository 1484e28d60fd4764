package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash, "hash must not contain the plaintext")
	assert.True(t, VerifyPassword(hash, "secret1"))
	assert.False(t, VerifyPassword(hash, "secret2"))
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	h1, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	// Salts are generated per call, so two hashes of the same input differ
	// while both still verify.
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifyPassword(h1, "secret1"))
	assert.True(t, VerifyPassword(h2, "secret1"))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	// A malformed hash is indistinguishable from a mismatch: both are false.
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "secret1"))
	assert.False(t, VerifyPassword("", "secret1"))
}
