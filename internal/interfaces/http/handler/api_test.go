package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazzel/portal/internal/application/masrafci"
	"github.com/mazzel/portal/internal/application/portal"
	appworkshop "github.com/mazzel/portal/internal/application/workshop"
	"github.com/mazzel/portal/internal/infrastructure/auth"
	"github.com/mazzel/portal/internal/infrastructure/config"
	"github.com/mazzel/portal/internal/infrastructure/persistence"
	"github.com/mazzel/portal/internal/infrastructure/persistence/models"
	"github.com/mazzel/portal/internal/interfaces/http/handler"
	"github.com/mazzel/portal/internal/interfaces/http/middleware"
	"github.com/mazzel/portal/internal/interfaces/http/router"
)

// fixedClock pins the reminder due check for HTTP-level tests
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type testServer struct {
	engine *gin.Engine
	jwt    *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.DB.AutoMigrate(
		&models.RecordModel{},
		&models.RuleModel{},
		&models.EventModel{},
		&models.SettingsModel{},
		&models.CustomerModel{},
		&models.MaterialModel{},
		&models.NestingProjectModel{},
	))

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "mazzel-portal",
	})
	verifier := auth.NewCredentialVerifier(config.AuthConfig{
		AdminUser:     "demo",
		AdminPassword: "demo-sifre",
	})

	clock := fixedClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	recordRepo := persistence.NewGormRecordRepository(db.DB)
	ruleRepo := persistence.NewGormRuleRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	engine := gin.New()
	router.NewRouter(engine).
		Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService: jwtService,
			SkipPaths:  []string{"/api/health", "/api/auth/login", "/api/auth/refresh"},
		})).
		Register(handler.NewSystemHandler(db, "test")).
		Register(handler.NewAuthHandler(portal.NewAuthService(verifier, jwtService))).
		Register(handler.NewMasrafciHandler(
			masrafci.NewRecordService(recordRepo, txScope, clock),
			masrafci.NewReminderService(ruleRepo, eventRepo, txScope, clock),
		)).
		Register(handler.NewSettingsHandler(
			portal.NewSettingsService(persistence.NewGormSettingsRepository(db.DB)),
		)).
		Register(handler.NewWorkshopHandler(appworkshop.NewService(
			persistence.NewGormCustomerRepository(db.DB),
			persistence.NewGormMaterialRepository(db.DB),
			persistence.NewGormNestingProjectRepository(db.DB),
		))).
		Setup()

	return &testServer{engine: engine, jwt: jwtService}
}

func (s *testServer) token(t *testing.T, username string) string {
	t.Helper()
	pair, err := s.jwt.GenerateTokenPair(username)
	require.NoError(t, err)
	return pair.AccessToken
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// envelope mirrors the standard response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	assert.True(t, env.Success)
}

func TestLoginFlow(t *testing.T) {
	s := newTestServer(t)

	t.Run("valid credentials", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"username": "demo",
			"password": "demo-sifre",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			User         string `json:"user"`
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		}
		env := decode(t, w)
		require.True(t, env.Success)
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, "demo", resp.User)
		assert.NotEmpty(t, resp.AccessToken)

		// The access token opens protected routes
		w = s.do(t, http.MethodGet, "/api/masrafci/records", resp.AccessToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		// And the refresh token rotates the pair
		w = s.do(t, http.MethodPost, "/api/auth/refresh", "", gin.H{
			"refresh_token": resp.RefreshToken,
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"username": "demo",
			"password": "yanlis",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)

		env := decode(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ERR_UNAUTHORIZED", env.Error.Code)
		assert.Equal(t, "Hatalı kullanıcı adı veya şifre", env.Error.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "demo"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthGuard(t *testing.T) {
	s := newTestServer(t)

	t.Run("missing header", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/masrafci/records", "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)

		env := decode(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ERR_UNAUTHORIZED", env.Error.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/masrafci/records", nil)
		req.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/masrafci/records", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRecordEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "demo")

	t.Run("create list delete", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/masrafci/records", token, gin.H{
			"type":      "fatura",
			"ad":        "Elektrik",
			"tutar":     "245.90",
			"ay":        "2025-03",
			"kurum":     "Elektrik",
			"son_odeme": "2025-03-20",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created struct {
			ID uint `json:"id"`
		}
		env := decode(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &created))
		require.NotZero(t, created.ID)

		w = s.do(t, http.MethodGet, "/api/masrafci/records?type=fatura&month=2025-03", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var records []map[string]interface{}
		env = decode(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &records))
		require.Len(t, records, 1)
		assert.Equal(t, "Elektrik", records[0]["ad"])
		assert.Equal(t, "odenmedi", records[0]["durum"])

		w = s.do(t, http.MethodDelete, "/api/masrafci/records/1", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = s.do(t, http.MethodDelete, "/api/masrafci/records/1", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("validation failures", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/masrafci/records", token, gin.H{"type": "fatura"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = s.do(t, http.MethodPost, "/api/masrafci/records", token, gin.H{
			"type": "fatura",
			"ad":   "Elektrik",
			"ay":   "Mart 2025",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = s.do(t, http.MethodGet, "/api/masrafci/records?month=kasim", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid path id", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, "/api/masrafci/records/abc", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("summary shape", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/masrafci/summary?month=2025-03", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var summary map[string]json.RawMessage
		env := decode(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &summary))
		for _, key := range []string{
			"toplam_gider", "kategori_dagilimi", "yaklasan_faturalar",
			"aktif_taksitler", "son_islemler", "pending_reminders",
		} {
			assert.Contains(t, summary, key)
		}
	})
}

func TestReminderEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "demo")

	t.Run("rule then check then action", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/masrafci/reminder-rules", token, gin.H{
			"display_name":       "Elektrik",
			"expected_start_day": 5,
			"expected_end_day":   12,
			"lead_days":          2,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		env := decode(t, w)
		var created struct {
			ProviderKey string `json:"provider_key"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &created))
		assert.Equal(t, "elektrik", created.ProviderKey)

		// Duplicate provider conflicts
		w = s.do(t, http.MethodPost, "/api/masrafci/reminder-rules", token, gin.H{
			"display_name": "ELEKTRİK",
		})
		require.Equal(t, http.StatusConflict, w.Code)
		env = decode(t, w)
		assert.Equal(t, "ERR_ALREADY_EXISTS", env.Error.Code)

		// The due check materializes a pending event (clock is March 10th)
		w = s.do(t, http.MethodPost, "/api/masrafci/reminder-check/run", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var pending []map[string]interface{}
		env = decode(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &pending))
		require.Len(t, pending, 1)
		assert.Equal(t, "2025-03", pending[0]["month"])
		eventID := int(pending[0]["id"].(float64))

		// add_now answers the event and points the UI at the form
		w = s.do(t, http.MethodPost,
			"/api/masrafci/reminders/"+strconv.Itoa(eventID)+"/action", token,
			gin.H{"action": "add_now"})
		require.Equal(t, http.StatusOK, w.Code)

		var action struct {
			Redirect    string `json:"redirect"`
			DisplayName string `json:"display_name"`
		}
		env = decode(t, w)
		require.NoError(t, json.Unmarshal(env.Data, &action))
		assert.Equal(t, "add-record", action.Redirect)
		assert.Equal(t, "Elektrik", action.DisplayName)
	})

	t.Run("invalid action", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/masrafci/reminders/1/action", token,
			gin.H{"action": "remind_me_later"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		w := s.do(t, http.MethodPatch, "/api/masrafci/reminder-rules/1", token, gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSettingsEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "demo")

	w := s.do(t, http.MethodPost, "/api/settings", token, gin.H{"theme": "light"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/notification", token, gin.H{"message": "Merhaba"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/settings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]interface{}
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, "light", doc["theme"])
	assert.Equal(t, "Mazzel Works Portal", doc["site_title"])

	list, ok := doc["notifications"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)
}

func TestWorkshopEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "demo")

	w := s.do(t, http.MethodPost, "/api/customers", token, gin.H{
		"name":  "Demir Çelik A.Ş.",
		"phone": "0212 555 0001",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/customers", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var customers []map[string]interface{}
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &customers))
	require.Len(t, customers, 1)
	assert.Equal(t, "Demir Çelik A.Ş.", customers[0]["name"])
	assert.Equal(t, "0212 555 0001", customers[0]["phone"])

	w = s.do(t, http.MethodPost, "/api/nesting/project", token, gin.H{
		"name":   "Kapı panelleri",
		"sheets": []string{"2mm"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/nesting/projects", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var projects []map[string]interface{}
	env = decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &projects))
	require.Len(t, projects, 1)
}
