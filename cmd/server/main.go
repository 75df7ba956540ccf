package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mazzel/portal/internal/application/masrafci"
	"github.com/mazzel/portal/internal/application/portal"
	workshopapp "github.com/mazzel/portal/internal/application/workshop"
	"github.com/mazzel/portal/internal/infrastructure/auth"
	"github.com/mazzel/portal/internal/infrastructure/config"
	"github.com/mazzel/portal/internal/infrastructure/launcher"
	"github.com/mazzel/portal/internal/infrastructure/logger"
	"github.com/mazzel/portal/internal/infrastructure/persistence"
	"github.com/mazzel/portal/internal/infrastructure/proxy"
	"github.com/mazzel/portal/internal/interfaces/http/handler"
	"github.com/mazzel/portal/internal/interfaces/http/middleware"
	"github.com/mazzel/portal/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Mazzel Works Portal",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Repositories
	recordRepo := persistence.NewGormRecordRepository(db.DB)
	ruleRepo := persistence.NewGormRuleRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	materialRepo := persistence.NewGormMaterialRepository(db.DB)
	projectRepo := persistence.NewGormNestingProjectRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	verifier := auth.NewCredentialVerifier(cfg.Auth)
	tokidbClient := proxy.NewClient(cfg.TokiDB, log)
	tetra := launcher.NewTetra(cfg.Tetra, log)
	clock := masrafci.SystemClock{}

	// Application services
	authService := portal.NewAuthService(verifier, jwtService)
	settingsService := portal.NewSettingsService(settingsRepo)
	recordService := masrafci.NewRecordService(recordRepo, txScope, clock)
	reminderService := masrafci.NewReminderService(ruleRepo, eventRepo, txScope, clock)
	workshopService := workshopapp.NewService(customerRepo, materialRepo, projectRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	r := router.NewRouter(engine)
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/health",
			"/api/auth/login",
			"/api/auth/refresh",
		},
		Logger: log,
	}))

	r.Register(handler.NewSystemHandler(db, version))
	r.Register(handler.NewAuthHandler(authService))
	r.Register(handler.NewSettingsHandler(settingsService))
	r.Register(handler.NewMasrafciHandler(recordService, reminderService))
	r.Register(handler.NewWorkshopHandler(workshopService))
	r.Register(handler.NewTokiDBHandler(tokidbClient, log))
	r.Register(handler.NewTetraHandler(tetra))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
