package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	memberID := uint(7)
	token, err := GenerateAccessToken(1, &memberID, "jane@example.com", "Jane", "admin", testSecret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(1), claims.UserID)
	require.NotNil(t, claims.MemberID)
	assert.Equal(t, uint(7), *claims.MemberID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Jane", claims.Name)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "chamalink", claims.Issuer)
}

func TestAccessTokenWithoutMember(t *testing.T) {
	token, err := GenerateAccessToken(1, nil, "jane@example.com", "Jane", "member", testSecret, 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Nil(t, claims.MemberID)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, nil, "jane@example.com", "Jane", "member", testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(1, nil, "jane@example.com", "Jane", "member", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessTokenGarbage(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(1, "token-id-1", testSecret, 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "token-id-1", claims.TokenID)
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	refresh, err := GenerateRefreshToken(1, "token-id-1", testSecret, 7)
	require.NoError(t, err)

	// Parsing succeeds structurally but the access claims are empty.
	claims, err := ValidateAccessToken(refresh, testSecret)
	require.NoError(t, err)
	assert.Zero(t, claims.Email)
	assert.Zero(t, claims.Role)
}
