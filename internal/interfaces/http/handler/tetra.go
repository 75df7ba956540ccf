package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mazzel/portal/internal/infrastructure/launcher"
)

// TetraHandler reports the TETRA frontend's availability, triggering the
// local autostart script when the app is down
type TetraHandler struct {
	BaseHandler
	tetra *launcher.Tetra
}

// NewTetraHandler creates a new TetraHandler
func NewTetraHandler(tetra *launcher.Tetra) *TetraHandler {
	return &TetraHandler{tetra: tetra}
}

// RegisterRoutes registers TETRA routes
func (h *TetraHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tetra/status", h.Status)
}

// Status probes the TETRA app. When it is down and a start script is
// configured the script is launched; the client polls until running.
func (h *TetraHandler) Status(c *gin.Context) {
	h.Success(c, h.tetra.Status())
}
