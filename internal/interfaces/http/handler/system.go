package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mazzel/portal/internal/infrastructure/persistence"
)

// SystemHandler serves health probes
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database, version string) *SystemHandler {
	return &SystemHandler{db: db, version: version}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports service and database status
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}
	h.Success(c, gin.H{
		"status":   status,
		"database": dbStatus,
		"version":  h.version,
	})
}
