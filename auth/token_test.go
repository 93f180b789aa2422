package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("user-1", "octocat", testSigningKey, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testSigningKey)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "octocat", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("user-1", "octocat", testSigningKey, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSigningKey)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenWrongKey(t *testing.T) {
	token, err := GenerateToken("user-1", "octocat", testSigningKey, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("a-different-key"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenMalformed(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := ParseToken(token, testSigningKey)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestParseTokenRejectsUnsignedAlg(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:   "user-1",
		Username: "octocat",
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(token, testSigningKey)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
