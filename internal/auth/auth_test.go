package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	// Hashing is salted: the same input never produces the same hash twice
	other, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "secret123"))
}

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken("alice", "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := VerifyToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("alice", "secret", time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	token, err := GenerateToken("alice", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := VerifyToken("not.a.token", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEmptySecret(t *testing.T) {
	_, err := GenerateToken("alice", "", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	_, err = VerifyToken("whatever", "")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
