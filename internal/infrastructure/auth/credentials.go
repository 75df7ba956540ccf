package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/mazzel/portal/internal/infrastructure/config"
)

// CredentialVerifier checks login attempts against the portal's single
// admin credential. The password is normally a bcrypt hash; plaintext
// comparison is a development convenience that config validation rejects
// in production.
type CredentialVerifier struct {
	user          string
	passwordHash  string
	plainPassword string
}

// NewCredentialVerifier creates a verifier from the auth configuration
func NewCredentialVerifier(cfg config.AuthConfig) *CredentialVerifier {
	return &CredentialVerifier{
		user:          cfg.AdminUser,
		passwordHash:  cfg.AdminPasswordHash,
		plainPassword: cfg.AdminPassword,
	}
}

// Verify reports whether the username and password match the configured
// admin credential
func (v *CredentialVerifier) Verify(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(v.user)) != 1 {
		return false
	}
	if v.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(v.passwordHash), []byte(password)) == nil
	}
	if v.plainPassword != "" {
		return subtle.ConstantTimeCompare([]byte(password), []byte(v.plainPassword)) == 1
	}
	return false
}

// HashPassword bcrypt-hashes a password for storage in configuration
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
