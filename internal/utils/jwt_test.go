package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, "RECEPTIONIST", 15)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "RECEPTIONIST", claims["role"])
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	at, err := NewAccessToken("right", 1, "CLIENT", 15)
	require.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	assert.Error(t, err)
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	rt, err := NewRefreshToken(7)
	require.NoError(t, err)
	require.Len(t, rt.Raw, 96) // 48 random bytes, hex encoded

	assert.Equal(t, HashRefreshRaw(rt.Raw), HashRefreshRaw(rt.Raw))
	assert.NotEqual(t, rt.Raw, HashRefreshRaw(rt.Raw))

	other, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, rt.Raw, other.Raw)
}
