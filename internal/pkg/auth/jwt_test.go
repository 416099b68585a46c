package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/clubnet/internal/app/models"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour)

	token, err := svc.GenerateToken(42, "alice@campus.edu", models.RoleClubAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice@campus.edu", claims.Email)
	assert.Equal(t, models.RoleClubAdmin, claims.Role)
}

func TestJWTService_ValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour)

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTService("test-secret", -time.Minute, 24*time.Hour)
		token, err := expired.GenerateToken(1, "a@b.c", models.RoleStudent)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret", time.Hour, 24*time.Hour)
		token, err := other.GenerateToken(1, "a@b.c", models.RoleStudent)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	token, err = ExtractBearerToken("bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.Error(t, err)

	_, err = ExtractBearerToken("Basic abc123")
	assert.Error(t, err)

	_, err = ExtractBearerToken("abc123")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.True(t, CheckPassword(hashed, "correct horse battery staple"))
	assert.False(t, CheckPassword(hashed, "wrong password"))
}
