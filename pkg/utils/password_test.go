package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	h := HashPassword("Password123!")
	assert.NotEmpty(t, h)
	assert.NotEqual(t, "Password123!", h)

	assert.True(t, CheckPassword("Password123!", h))
	assert.False(t, CheckPassword("password123!", h))
	assert.False(t, CheckPassword("Password123!", "not-a-hash"))
}

func TestHashPassword_Salted(t *testing.T) {
	// Two hashes of the same input must differ (per-hash salt).
	assert.NotEqual(t, HashPassword("same"), HashPassword("same"))
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
