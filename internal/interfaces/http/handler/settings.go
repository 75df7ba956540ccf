package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mazzel/portal/internal/application/portal"
	"github.com/mazzel/portal/internal/domain/settings"
)

// SettingsHandler serves the portal settings document and notifications
type SettingsHandler struct {
	BaseHandler
	settingsService *portal.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *portal.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.Get)
	rg.POST("/settings", h.Update)
	rg.POST("/notification", h.AddNotification)
}

// Get returns the effective settings document
func (h *SettingsHandler) Get(c *gin.Context) {
	doc, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Update shallow-merges the given keys into the settings document
func (h *SettingsHandler) Update(c *gin.Context) {
	var patch settings.Document
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.BadRequest(c, "invalid request body")
		return
	}

	if err := h.settingsService.Update(c.Request.Context(), patch); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"updated": true})
}

// AddNotification appends a notification to the settings document
func (h *SettingsHandler) AddNotification(c *gin.Context) {
	var req portal.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body")
		return
	}

	if err := h.settingsService.AddNotification(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"added": true})
}
