package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_SessionTokenRoundTrip(t *testing.T) {
	manager := NewJWT("test-secret")
	userID := uuid.New()

	tokenString, expiresAt, err := manager.GenerateSessionToken(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.WithinDuration(t, time.Now().Add(sessionTTL), expiresAt, time.Minute)

	parsedID, err := manager.ParseSessionToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
}

func TestJWT_ParseSessionToken_WrongSecret(t *testing.T) {
	tokenString, _, err := NewJWT("secret-a").GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	_, err = NewJWT("secret-b").ParseSessionToken(tokenString)
	assert.Error(t, err)
}

func TestJWT_ParseSessionToken_Garbage(t *testing.T) {
	_, err := NewJWT("secret").ParseSessionToken("not-a-token")
	assert.Error(t, err)
}

func TestJWT_ParseSessionToken_WrongType(t *testing.T) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID:    uuid.New(),
		TokenType: "refresh",
	})
	tokenString, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret").ParseSessionToken(tokenString)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token type mismatch")
}

func TestJWT_ParseSessionToken_Expired(t *testing.T) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
		UserID:    uuid.New(),
		TokenType: typeSession,
	})
	tokenString, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret").ParseSessionToken(tokenString)
	assert.Error(t, err)
}
