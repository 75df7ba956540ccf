package launcher

import (
	"net/http"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mazzel/portal/internal/infrastructure/config"
)

// Status reports the TETRA companion process state
type Status struct {
	Running  bool   `json:"running"`
	Starting bool   `json:"starting"`
	URL      string `json:"url"`
}

// Tetra starts the TETRA companion process on demand. The start attempt
// is single-flight: the first caller that finds both probe URLs down
// launches the script and polls for readiness, while concurrent callers
// observe the in-flight attempt and return immediately.
type Tetra struct {
	appURL      string
	healthURL   string
	startScript string
	startupWait time.Duration

	httpClient *http.Client
	logger     *zap.Logger

	mu       sync.Mutex
	starting bool
}

// NewTetra creates a TETRA launcher
func NewTetra(cfg config.TetraConfig, logger *zap.Logger) *Tetra {
	return &Tetra{
		appURL:      cfg.AppURL,
		healthURL:   cfg.HealthURL,
		startScript: cfg.StartScript,
		startupWait: cfg.StartupWait,
		httpClient: &http.Client{
			Timeout: time.Second,
		},
		logger: logger.Named("tetra"),
	}
}

// Status probes the app, starting it when it is down and a start script
// is configured
func (t *Tetra) Status() Status {
	running := t.urlOK(t.appURL)
	if running && t.urlOK(t.healthURL) {
		return Status{Running: true, URL: t.appURL}
	}

	starting := t.maybeStart()
	return Status{
		Running:  t.urlOK(t.appURL),
		Starting: starting,
		URL:      t.appURL,
	}
}

// maybeStart launches the start script at most once concurrently. It
// returns true while an attempt is in flight, whether this call started
// it or another one did.
func (t *Tetra) maybeStart() bool {
	if t.startScript == "" {
		return false
	}
	if _, err := os.Stat(t.startScript); err != nil {
		return false
	}

	t.mu.Lock()
	if t.starting {
		t.mu.Unlock()
		return true
	}
	t.starting = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.starting = false
		t.mu.Unlock()
	}()

	t.logger.Info("Launching start script", zap.String("script", t.startScript))
	cmd := exec.Command(t.startScript)
	if err := cmd.Start(); err != nil {
		t.logger.Error("Failed to launch start script", zap.Error(err))
		return false
	}
	// The script keeps running after we return; reap it in the background.
	go func() { _ = cmd.Wait() }()

	deadline := time.Now().Add(t.startupWait)
	for time.Now().Before(deadline) {
		if t.urlOK(t.appURL) {
			t.logger.Info("App is up", zap.String("url", t.appURL))
			break
		}
		time.Sleep(500 * time.Millisecond)
	}

	return true
}

func (t *Tetra) urlOK(url string) bool {
	if url == "" {
		return false
	}
	resp, err := t.httpClient.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}
