package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("0123456789abcdef", "taskflow", time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := issuer.Generate(42, "ada@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer, err := NewTokenIssuer("0123456789abcdef", "taskflow", time.Minute)
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := issuer.Generate(1, "ada@example.com")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_WrongSecretOrIssuer(t *testing.T) {
	signer, err := NewTokenIssuer("0123456789abcdef", "taskflow", time.Hour)
	require.NoError(t, err)
	token, _, err := signer.Generate(1, "ada@example.com")
	require.NoError(t, err)

	otherSecret, err := NewTokenIssuer("fedcba9876543210", "taskflow", time.Hour)
	require.NoError(t, err)
	_, err = otherSecret.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	otherIssuer, err := NewTokenIssuer("0123456789abcdef", "someone-else", time.Hour)
	require.NoError(t, err)
	_, err = otherIssuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer, err := NewTokenIssuer("0123456789abcdef", "taskflow", time.Hour)
	require.NoError(t, err)

	_, err = issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenIssuer_EmptySecret(t *testing.T) {
	_, err := NewTokenIssuer("", "taskflow", time.Hour)
	assert.Error(t, err)
}
