package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	h1, err := HashPassword("pw123")
	require.NoError(t, err)
	h2, err := HashPassword("pw123")
	require.NoError(t, err)

	assert.NotEqual(t, "pw123", h1)
	assert.NotEqual(t, h1, h2, "salts must differ")

	cost, err := bcrypt.Cost([]byte(h1))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}

func TestCheckPassword(t *testing.T) {
	h, err := HashPassword("pw123")
	require.NoError(t, err)

	assert.True(t, CheckPassword("pw123", h))
	assert.False(t, CheckPassword("wrong", h))
	assert.False(t, CheckPassword("", h))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	for _, h := range []string{"", "plain", "$2a$10$short", strings.Repeat("x", 60)} {
		assert.False(t, CheckPassword("pw123", h), h)
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", 73))
	assert.Error(t, err)
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
