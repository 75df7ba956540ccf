package proxy

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mazzel/portal/internal/infrastructure/config"
)

// Hop-by-hop headers are stripped from upstream responses. Content-Length
// is recomputed by the HTTP layer after the body is rewritten.
var hopByHopHeaders = map[string]bool{
	"connection":          true,
	"keep-alive":          true,
	"proxy-authenticate":  true,
	"proxy-authorization": true,
	"te":                  true,
	"trailers":            true,
	"transfer-encoding":   true,
	"upgrade":             true,
	"content-length":      true,
}

// Client forwards portal requests to the TOKI DB sibling service. Only
// Content-Type and Accept travel upstream, plus the internal token when
// configured; everything else (cookies, auth headers) stays inside the
// portal.
type Client struct {
	baseURL       string
	internalToken string
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewClient creates a TOKI DB proxy client
func NewClient(cfg config.TokiDBConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		internalToken: cfg.InternalToken,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("tokidb"),
	}
}

// HealthURL returns the upstream health endpoint
func (c *Client) HealthURL() string {
	return c.baseURL + "/health"
}

// APITarget builds the upstream URL for an API subpath. The router hands
// us a decoded path, so each segment is re-escaped to keep Turkish
// characters and spaces intact on the wire.
func (c *Client) APITarget(subpath, rawQuery string) string {
	segments := strings.Split(strings.TrimLeft(subpath, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	target := c.baseURL + "/api/" + strings.Join(segments, "/")
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}

// Result is a completed upstream exchange
type Result struct {
	Status int
	Header http.Header
	Body   []byte
}

// Forward sends the request to the target URL and returns the upstream
// response with hop-by-hop headers removed. A transport-level failure
// returns an error; upstream HTTP errors come back as a normal Result.
func (c *Client) Forward(r *http.Request, targetURL string) (*Result, error) {
	var body io.Reader
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		body = r.Body
	}

	upstreamReq, err := http.NewRequestWithContext(r.Context(), r.Method, targetURL, body)
	if err != nil {
		return nil, err
	}

	for _, name := range []string{"Content-Type", "Accept"} {
		if value := r.Header.Get(name); value != "" {
			upstreamReq.Header.Set(name, value)
		}
	}
	if c.internalToken != "" {
		upstreamReq.Header.Set("X-TOKIDB-INTERNAL-TOKEN", c.internalToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(upstreamReq)
	if err != nil {
		c.logger.Warn("Upstream unavailable",
			zap.String("target", targetURL),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Proxied request",
		zap.String("target", targetURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	header := http.Header{}
	for key, values := range resp.Header {
		if hopByHopHeaders[strings.ToLower(key)] {
			continue
		}
		for _, value := range values {
			header.Add(key, value)
		}
	}

	return &Result{
		Status: resp.StatusCode,
		Header: header,
		Body:   payload,
	}, nil
}
