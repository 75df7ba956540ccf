package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazzel/portal/internal/infrastructure/config"
)

func TestCredentialVerifierWithHash(t *testing.T) {
	hash, err := HashPassword("gizli-sifre")
	require.NoError(t, err)

	v := NewCredentialVerifier(config.AuthConfig{
		AdminUser:         "admin",
		AdminPasswordHash: hash,
	})

	assert.True(t, v.Verify("admin", "gizli-sifre"))
	assert.False(t, v.Verify("admin", "yanlis"))
	assert.False(t, v.Verify("root", "gizli-sifre"))
}

func TestCredentialVerifierPlaintextFallback(t *testing.T) {
	v := NewCredentialVerifier(config.AuthConfig{
		AdminUser:     "admin",
		AdminPassword: "dev-sifre",
	})

	assert.True(t, v.Verify("admin", "dev-sifre"))
	assert.False(t, v.Verify("admin", ""))
}

func TestCredentialVerifierNoPasswordConfigured(t *testing.T) {
	v := NewCredentialVerifier(config.AuthConfig{AdminUser: "admin"})

	assert.False(t, v.Verify("admin", ""))
	assert.False(t, v.Verify("admin", "herhangi"))
}

func TestCredentialVerifierHashWinsOverPlaintext(t *testing.T) {
	hash, err := HashPassword("hash-sifre")
	require.NoError(t, err)

	v := NewCredentialVerifier(config.AuthConfig{
		AdminUser:         "admin",
		AdminPasswordHash: hash,
		AdminPassword:     "plain-sifre",
	})

	assert.True(t, v.Verify("admin", "hash-sifre"))
	assert.False(t, v.Verify("admin", "plain-sifre"))
}
