package portal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazzel/portal/internal/application/portal"
	"github.com/mazzel/portal/internal/domain/shared"
	"github.com/mazzel/portal/internal/infrastructure/auth"
	"github.com/mazzel/portal/internal/infrastructure/config"
)

func newAuthService(t *testing.T) *portal.AuthService {
	t.Helper()

	hash, err := auth.HashPassword("gizli-sifre")
	require.NoError(t, err)

	verifier := auth.NewCredentialVerifier(config.AuthConfig{
		AdminUser:         "admin",
		AdminPasswordHash: hash,
	})
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		RefreshSecret:          "test-refresh-secret-test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "mazzel-portal",
	})
	return portal.NewAuthService(verifier, jwtService)
}

func TestAuthServiceLogin(t *testing.T) {
	svc := newAuthService(t)

	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		resp, err := svc.Login(portal.LoginRequest{Username: "admin", Password: "gizli-sifre"})
		require.NoError(t, err)
		assert.Equal(t, "admin", resp.User)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, int64(900), resp.ExpiresIn)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(portal.LoginRequest{Username: "admin", Password: "yanlis"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("wrong username reads the same", func(t *testing.T) {
		_, err := svc.Login(portal.LoginRequest{Username: "root", Password: "gizli-sifre"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
		assert.Equal(t, "Hatalı kullanıcı adı veya şifre", domainErr.Message)
	})
}

func TestAuthServiceRefresh(t *testing.T) {
	svc := newAuthService(t)

	t.Run("valid refresh token rotates the pair", func(t *testing.T) {
		login, err := svc.Login(portal.LoginRequest{Username: "admin", Password: "gizli-sifre"})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(portal.RefreshRequest{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.Equal(t, "admin", refreshed.User)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Refresh(portal.RefreshRequest{RefreshToken: "not-a-jwt"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		login, err := svc.Login(portal.LoginRequest{Username: "admin", Password: "gizli-sifre"})
		require.NoError(t, err)

		_, err = svc.Refresh(portal.RefreshRequest{RefreshToken: login.AccessToken})
		assert.Error(t, err)
	})
}
