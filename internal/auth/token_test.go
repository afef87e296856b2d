package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 15*time.Minute)

	token, err := tm.Issue("user-123", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 15*time.Minute)
	other := NewTokenManager("other-secret", 15*time.Minute)

	token, err := tm.Issue("user-123", "user@example.com")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenTampered(t *testing.T) {
	tm := NewTokenManager("test-secret", 15*time.Minute)

	token, err := tm.Issue("user-123", "user@example.com")
	require.NoError(t, err)

	_, err = tm.Parse(token + "x")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Issue("user-123", "user@example.com")
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.Error(t, err)
}
