package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("1234", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "1234", hash)

	assert.True(t, VerifyPassword(hash, "1234"))
	assert.False(t, VerifyPassword(hash, "12345"))
	assert.False(t, VerifyPassword("not-a-hash", "1234"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
