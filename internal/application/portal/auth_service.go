package portal

import (
	"github.com/mazzel/portal/internal/domain/shared"
	"github.com/mazzel/portal/internal/infrastructure/auth"
)

// AuthService handles the portal's single-account login and token refresh
type AuthService struct {
	verifier   *auth.CredentialVerifier
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(verifier *auth.CredentialVerifier, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		verifier:   verifier,
		jwtService: jwtService,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse carries the issued token pair and the logged-in user
type LoginResponse struct {
	User         string `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login verifies the portal credentials and issues a token pair. Wrong
// username and wrong password are indistinguishable.
func (s *AuthService) Login(req LoginRequest) (*LoginResponse, error) {
	if !s.verifier.Verify(req.Username, req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Hatalı kullanıcı adı veya şifre")
	}

	pair, err := s.jwtService.GenerateTokenPair(req.Username)
	if err != nil {
		return nil, err
	}
	return s.toLoginResponse(req.Username, pair), nil
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(req RefreshRequest) (*LoginResponse, error) {
	pair, err := s.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Geçersiz veya süresi dolmuş token")
	}

	claims, err := s.jwtService.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	return s.toLoginResponse(claims.Username, pair), nil
}

func (s *AuthService) toLoginResponse(username string, pair *auth.TokenPair) *LoginResponse {
	return &LoginResponse{
		User:         username,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int64(s.jwtService.GetAccessTokenExpiration().Seconds()),
	}
}
