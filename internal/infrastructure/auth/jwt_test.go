package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazzel/portal/internal/infrastructure/config"
)

func newTestJWTService(accessTTL time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		RefreshSecret:          "test-refresh-secret-test-refresh-secret",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "mazzel-portal",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)

	pair, err := svc.GenerateTokenPair("admin")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "mazzel-portal", claims.Issuer)

	refreshClaims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
}

func TestValidateTokenTypeMismatch(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)

	pair, err := svc.GenerateTokenPair("admin")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	pair, err := svc.GenerateTokenPair("admin")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)

	_, err := svc.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	other := NewJWTService(config.JWTConfig{
		Secret:                 "another-secret-entirely-another-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "mazzel-portal",
	})

	pair, err := other.GenerateTokenPair("admin")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)

	pair, err := svc.GenerateTokenPair("admin")
	require.NoError(t, err)

	rotated, err := svc.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}
