package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
)

func testUser() models.User {
	u := models.User{
		Email: "ayu@example.com",
		Role:  models.UserRoleUser,
	}
	u.ID = "0b6f7d52-8f1c-4a3a-9b8e-2f1f0c9d4e10"
	return u
}

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt-test-secret")
	user := testUser()

	token, err := GenerateJWT(user)
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, string(user.Role), claims.Role)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt-test-secret")
	token, err := GenerateJWT(testUser())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "a-different-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "jwt-test-secret")
	user := testUser()

	refresh, err := GenerateRefreshToken(user)
	require.NoError(t, err)

	claims, err := ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}
