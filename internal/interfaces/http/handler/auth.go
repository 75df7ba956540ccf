package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mazzel/portal/internal/application/portal"
)

// AuthHandler handles portal login and token refresh
type AuthHandler struct {
	BaseHandler
	authService *portal.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *portal.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}
}

// Login verifies credentials and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req portal.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "username and password are required")
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req portal.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "refresh_token is required")
		return
	}

	resp, err := h.authService.Refresh(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
