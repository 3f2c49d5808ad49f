package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	httpAdapter "github.com/lorrc/owner-dashboard/internal/adapters/primary/http"
	mw "github.com/lorrc/owner-dashboard/internal/adapters/primary/http/middleware"
	"github.com/lorrc/owner-dashboard/internal/adapters/secondary/cache"
	"github.com/lorrc/owner-dashboard/internal/adapters/secondary/postgres"
	"github.com/lorrc/owner-dashboard/internal/auth"
	"github.com/lorrc/owner-dashboard/internal/config"
	"github.com/lorrc/owner-dashboard/internal/core/ports"
	"github.com/lorrc/owner-dashboard/internal/core/services"
	"github.com/lorrc/owner-dashboard/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize Database
	db, err := postgres.Open(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("database connection established")

	if cfg.Database.RunMigrations {
		if err := postgres.Migrate(cfg.Database); err != nil {
			logger.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	// 4. Initialize Listing Cache
	ctx := context.Background()
	var listingCache ports.ListingCache
	var cacheChecker httpAdapter.HealthChecker
	if cfg.Cache.Enabled {
		redisCache, err := cache.New(ctx, cfg.Cache)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisCache.Close()
		listingCache = redisCache
		cacheChecker = redisCache
		logger.Info("listing cache enabled", "addr", cfg.Cache.RedisAddr)
	} else {
		listingCache = cache.NewNoop()
		logger.Info("listing cache disabled")
	}

	// 5. Initialize Session Manager
	tokenManager := auth.NewTokenManager(cfg.Session.Secret, cfg.Session.TTL)

	// 6. Initialize Rate Limiters
	var generalRateLimiter, loginRateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		generalRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})

		loginRateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.LoginRPS,
			BurstSize:         cfg.RateLimit.LoginBurst,
			CleanupInterval:   time.Minute,
			TTL:               5 * time.Minute,
		})
	}

	// 7. Dependency Injection (Wiring the Hexagon)

	// Repositories (Secondary Adapters)
	userRepo := postgres.NewUserRepository(db)
	projectRepo := postgres.NewProjectRepository(db)

	// Services (Core)
	authService := services.NewAuthService(cfg.Owner, logger)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)

	// Handlers (Primary Adapters)
	renderer, err := httpAdapter.NewRenderer()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	authHandler := httpAdapter.NewAuthHandler(
		authService,
		tokenManager,
		renderer,
		cfg.Session.CookieName,
		cfg.Session.TTL,
		cfg.IsProduction(),
	)
	dashboardHandler := httpAdapter.NewDashboardHandler(userService, projectService, listingCache, renderer)
	userHandler := httpAdapter.NewUserHandler(userService, listingCache)
	projectHandler := httpAdapter.NewProjectHandler(projectService, listingCache)
	healthHandler := httpAdapter.NewHealthHandler(postgres.NewPinger(db), cacheChecker, cfg.App.Version)

	// 8. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))

	if generalRateLimiter != nil {
		r.Use(generalRateLimiter.Middleware)
	}

	// Health check endpoints
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// Public auth routes with stricter rate limiting on credential checks
	r.Get("/login", authHandler.ShowLogin)
	r.Group(func(r chi.Router) {
		if loginRateLimiter != nil {
			r.Use(loginRateLimiter.Middleware)
		}
		r.Post("/login", authHandler.Login)
	})
	r.Post("/logout", authHandler.Logout)

	// Session-gated dashboard routes
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireSession(tokenManager, cfg.Session.CookieName))
		r.Get("/", dashboardHandler.Show)
		r.Post("/users", userHandler.Create)
		r.Post("/projects", projectHandler.Create)
		r.Post("/projects/update", projectHandler.Update)
		r.Post("/projects/delete", projectHandler.Delete)
	})

	// 9. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
