package auth

import (
	"testing"
	"time"

	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	BcryptCost = bcrypt.MinCost

	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
}

func TestTokenLifecycle(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "lams"})

	token, expiresIn, err := svc.GenerateToken(7, "root", "Admin")
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "root", claims.Username)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "lams", claims.Issuer)
}

func TestValidateToken_Failures(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour})
	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour})
	expired := NewJWTService(JWTConfig{SecretKey: "k", AccessTokenExp: -time.Minute})

	foreign, _, err := other.GenerateToken(1, "a", "Admin")
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	old, _, err := expired.GenerateToken(1, "a", "Admin")
	require.NoError(t, err)
	_, err = svc.ValidateToken(old)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	_, err = svc.ValidateToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)

	token, err = ExtractBearerToken("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
	_, err = ExtractBearerToken("Basic dXNlcg==")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
}
