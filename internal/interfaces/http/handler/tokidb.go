package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mazzel/portal/internal/infrastructure/proxy"
)

// TokiDBHandler forwards TOKI DB requests to the internal backend,
// attaching the service token the browser never sees
type TokiDBHandler struct {
	BaseHandler
	client *proxy.Client
	logger *zap.Logger
}

// NewTokiDBHandler creates a new TokiDBHandler
func NewTokiDBHandler(client *proxy.Client, logger *zap.Logger) *TokiDBHandler {
	return &TokiDBHandler{client: client, logger: logger}
}

// RegisterRoutes registers TOKI DB proxy routes. A catch-all cannot
// coexist with a static sibling route in gin's tree, so the health probe
// is dispatched inside the proxy handler.
func (h *TokiDBHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Any("/tokidb/*subpath", h.Proxy)
}

// Proxy forwards a request under /api/tokidb/* to the backend. The
// special subpath "health" maps to the backend's health probe instead of
// its API tree.
func (h *TokiDBHandler) Proxy(c *gin.Context) {
	subpath := strings.TrimPrefix(c.Param("subpath"), "/")
	if subpath == "health" && c.Request.Method == http.MethodGet {
		h.forward(c, h.client.HealthURL())
		return
	}
	h.forward(c, h.client.APITarget(subpath, c.Request.URL.RawQuery))
}

func (h *TokiDBHandler) forward(c *gin.Context, targetURL string) {
	result, err := h.client.Forward(c.Request, targetURL)
	if err != nil {
		h.logger.Warn("tokidb backend unreachable",
			zap.String("target", targetURL),
			zap.Error(err))
		h.BadGateway(c, "TOKI DB backend'e ulaşılamıyor")
		return
	}

	for key, values := range result.Header {
		for _, value := range values {
			c.Writer.Header().Add(key, value)
		}
	}
	c.Data(result.Status, result.Header.Get("Content-Type"), result.Body)
}
