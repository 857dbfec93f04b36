package auth_services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(nil, "test-secret")

	token, err := svc.IssueToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := NewAuthService(nil, "secret-a")
	verifier := NewAuthService(nil, "secret-b")

	token, err := issuer.IssueToken("user-123")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	svc := NewAuthService(nil, "test-secret")

	_, err := svc.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenMissingUserID(t *testing.T) {
	secret := "test-secret"
	svc := NewAuthService(nil, secret)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.Error(t, err)
}
