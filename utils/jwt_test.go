package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIdentity(t *testing.T) {
	token, err := GenerateToken(Identity{UserID: "u1", Role: "admin", Email: "a@example.com", Name: "Ada"}, time.Hour)
	require.NoError(t, err)

	id, err := ExtractIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u1", Role: "admin", Email: "a@example.com", Name: "Ada"}, *id)
}

func TestExtractIdentityDefaultsRole(t *testing.T) {
	token, err := GenerateToken(Identity{UserID: "u1"}, time.Hour)
	require.NoError(t, err)

	id, err := ExtractIdentity(token)
	require.NoError(t, err)
	assert.Equal(t, "user", id.Role)
}

func TestExtractIdentityRejectsBadTokens(t *testing.T) {
	expired, err := GenerateToken(Identity{UserID: "u1"}, -time.Minute)
	require.NoError(t, err)
	_, err = ExtractIdentity(expired)
	assert.Error(t, err, "expired")

	noSubject, err := GenerateToken(Identity{}, time.Hour)
	require.NoError(t, err)
	_, err = ExtractIdentity(noSubject)
	assert.Error(t, err, "missing subject")

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = ExtractIdentity(forged)
	assert.Error(t, err, "wrong secret")

	_, err = ExtractIdentity("not-a-token")
	assert.Error(t, err)
}
