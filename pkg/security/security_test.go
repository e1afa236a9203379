package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashInput(t *testing.T) {
	first := HashInput("some-access-token")
	second := HashInput("some-access-token")
	assert.Equal(t, first, second, "digest must be deterministic")
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, HashInput("another-token"))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("S3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "S3cret-password", hash)

	assert.True(t, VerifyPassword(hash, "S3cret-password"))
	assert.False(t, VerifyPassword(hash, "wrong-password"))

	other, err := HashPassword("S3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "bcrypt hashes must be salted")
}

func TestNewSecureSerial(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		serial := NewSecureSerial()
		assert.Len(t, serial, 32)
		assert.NotContains(t, serial, "-")
		assert.False(t, seen[serial], "serials must not repeat")
		seen[serial] = true
	}
}
