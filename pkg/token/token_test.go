package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	signed, err := GenerateAccessToken(42, testSecret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ValidateToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "conectidade", claims.Issuer)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	signed, err := GenerateRefreshToken(7, testSecret, 7)
	require.NoError(t, err)

	claims, err := ValidateToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	signed, err := GenerateAccessToken(42, testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateToken(signed, "another-secret")
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	signed, err := GenerateAccessToken(42, testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateToken(signed, testSecret)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateTokenMalformed(t *testing.T) {
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := ValidateToken(tok, testSecret)
		assert.Error(t, err, "token %q", tok)
	}
}

func TestValidateTokenZeroUserID(t *testing.T) {
	signed, err := GenerateAccessToken(0, testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateToken(signed, testSecret)
	assert.Error(t, err)
}
