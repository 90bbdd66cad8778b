// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/carterperez-dev/templates/pos-backend/internal/admin"
	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/category"
	"github.com/carterperez-dev/templates/pos-backend/internal/config"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
	"github.com/carterperez-dev/templates/pos-backend/internal/dashboard"
	"github.com/carterperez-dev/templates/pos-backend/internal/health"
	"github.com/carterperez-dev/templates/pos-backend/internal/middleware"
	"github.com/carterperez-dev/templates/pos-backend/internal/product"
	"github.com/carterperez-dev/templates/pos-backend/internal/server"
	"github.com/carterperez-dev/templates/pos-backend/internal/transaction"
	"github.com/carterperez-dev/templates/pos-backend/internal/upload"
	"github.com/carterperez-dev/templates/pos-backend/internal/user"
	"github.com/carterperez-dev/templates/pos-backend/internal/web"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	revocations := auth.NewRedisRevocationList(redis)
	tokens, err := auth.NewTokenService(cfg.JWT, revocations)
	if err != nil {
		return err
	}
	logger.Info("token service initialized",
		"algorithm", "HS256",
		"lifetime", tokens.Lifetime(),
	)

	cookie := auth.NewSessionCookie(cfg.Session, tokens.Lifetime())
	guard := auth.NewGuard(tokens, cookie)

	uploads := upload.NewStore(cfg.Upload.Dir, cfg.Upload.URLPrefix)

	userRepo := user.NewRepository(db.DB, db)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc, guard)

	authSvc := auth.NewService(tokens, userSvc)
	authHandler := auth.NewHandler(authSvc, guard, cookie)

	categoryHandler := category.NewHandler(
		category.NewService(category.NewRepository(db.DB)),
		guard,
	)
	productHandler := product.NewHandler(
		product.NewService(product.NewRepository(db.DB), uploads),
		guard,
	)
	transactionHandler := transaction.NewHandler(
		transaction.NewService(transaction.NewRepository(db.DB, db)),
		guard,
	)
	dashboardHandler := dashboard.NewHandler(
		dashboard.NewService(dashboard.NewRepository(db.DB), logger),
		guard,
	)
	uploadHandler := upload.NewHandler(cfg.Upload, uploads, guard)

	healthHandler := health.NewHandler(
		health.Pinger("database", db.Ping),
		health.Pinger("redis", redis.Ping),
		health.Pinger("uploads", func(context.Context) error {
			return uploads.Writable()
		}),
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Guard:      guard,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	if cfg.Server.TrustProxy {
		router.Use(chimw.RealIP)
	}
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.Window(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen:   true,
			BypassFunc: isProbe,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.Gate(middleware.DefaultGateConfig(tokens, cookie)))

	credentialLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.Window(
				cfg.LoginRateLimit.Requests,
				cfg.LoginRateLimit.Burst,
				cfg.LoginRateLimit.Window,
			),
			KeyFunc:  middleware.KeyByIPAndRoute("auth"),
			FailOpen: true,
		},
	).Handler

	healthHandler.RegisterRoutes(router)
	router.Handle(uploads.URLPrefix()+"/*", uploads.Files())
	web.NewPages().RegisterRoutes(router)

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, credentialLimiter)
		productHandler.RegisterRoutes(r)
		categoryHandler.RegisterRoutes(r)
		transactionHandler.RegisterRoutes(r)
		dashboardHandler.RegisterRoutes(r)
		uploadHandler.RegisterRoutes(r)
		userHandler.RegisterAdminRoutes(r)
		adminHandler.RegisterRoutes(r)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func isProbe(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/livez", "/readyz":
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/static/")
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
