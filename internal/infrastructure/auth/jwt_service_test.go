package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/quezi/domain"
)

func TestJWTServiceImpl_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "quezi", time.Minute, time.Hour)

	access, err := svc.GenerateAccessToken(7, "CLIENT", "sess-1")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "CLIENT", claims.Role)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)

	refresh, err := svc.GenerateRefreshToken(7, "CLIENT", "sess-1")
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
}

func TestJWTServiceImpl_TokenTypesAreNotInterchangeable(t *testing.T) {
	svc := NewJWTService("secret", "quezi", time.Minute, time.Hour)

	refresh, err := svc.GenerateRefreshToken(1, "ADMIN", "s")
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	access, err := svc.GenerateAccessToken(1, "ADMIN", "s")
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTServiceImpl_Rejects(t *testing.T) {
	svc := NewJWTService("secret", "quezi", time.Minute, time.Hour)

	expired := NewJWTService("secret", "quezi", -time.Minute, time.Hour)
	token, err := expired.GenerateAccessToken(1, "CLIENT", "s")
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	otherKey := NewJWTService("other", "quezi", time.Minute, time.Hour)
	token, err = otherKey.GenerateAccessToken(1, "CLIENT", "s")
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	otherIssuer := NewJWTService("secret", "someone-else", time.Minute, time.Hour)
	token, err = otherIssuer.GenerateAccessToken(1, "CLIENT", "s")
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = svc.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTServiceImpl_MissingClaims(t *testing.T) {
	svc := NewJWTService("secret", "quezi", time.Minute, time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ": "access",
		"iss": "quezi",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, domain.ErrTokenMalformed)
}
