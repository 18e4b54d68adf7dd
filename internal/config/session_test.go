// internal/config/session_test.go
package config

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestPlayerIDFromToken(t *testing.T) {
	want := uuid.New()
	token := signedToken(t, jwt.MapClaims{"sub": want.String()})

	got, err := PlayerIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPlayerIDFromTokenMissingSubject(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"room": "room-1"})
	_, err := PlayerIDFromToken(token)
	require.Error(t, err)
}

func TestPlayerIDFromTokenBadSubject(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "not-a-uuid"})
	_, err := PlayerIDFromToken(token)
	require.Error(t, err)
}

func TestPlayerIDFromGarbage(t *testing.T) {
	_, err := PlayerIDFromToken("definitely.not.a-token")
	require.Error(t, err)
}
