// Copyright (c) 2026 Atelier Aurora contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/atelieraurora/aurora/internal/auth"
	"github.com/atelieraurora/aurora/internal/cache"
	"github.com/atelieraurora/aurora/internal/config"
	"github.com/atelieraurora/aurora/internal/handler"
	"github.com/atelieraurora/aurora/internal/handler/api"
	"github.com/atelieraurora/aurora/internal/logging"
	"github.com/atelieraurora/aurora/internal/middleware"
	"github.com/atelieraurora/aurora/internal/render"
	"github.com/atelieraurora/aurora/internal/service"
	"github.com/atelieraurora/aurora/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Aurora - page composition service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AURORA_JWT_SECRET      Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AURORA_DB_PATH         SQLite database path (default: ./data/aurora.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AURORA_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AURORA_ENV             Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AURORA_REDIS_URL       Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AURORA_DO_SEED         Seed default admin and demo catalog (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("aurora %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// newLogHandler picks the log output format: human-readable text during
// development, JSON everywhere else.
func newLogHandler(cfg *config.Config, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsDevelopment() {
		return slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.NewJSONHandler(os.Stdout, opts)
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(newLogHandler(cfg, logLevel))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the Event Log database
	logger = slog.New(logging.NewEventLogHandler(newLogHandler(cfg, logLevel), db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Cache backend: Redis when configured, in-memory otherwise
	var backend cache.Cache
	if cfg.UseRedisCache() {
		redisCache, err := cache.NewRedisCache(cache.RedisCacheOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.CachePrefix,
			DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		})
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		backend = redisCache
		slog.Info("using redis page cache", "prefix", cfg.CachePrefix)
	} else {
		backend = cache.NewMemoryCache(cache.MemoryCacheOptions{
			DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
			MaxSize:         cfg.CacheMaxSize,
			CleanupInterval: time.Minute,
		})
		slog.Info("using in-memory page cache", "max_size", cfg.CacheMaxSize)
	}
	pageCache := cache.NewPageCache(backend, time.Duration(cfg.CacheTTL)*time.Second)
	defer func() {
		if err := pageCache.Close(); err != nil {
			slog.Error("error closing page cache", "error", err)
		}
	}()

	// Services and handlers
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	pages := service.NewPages(db, pageCache)
	catalog := service.NewCatalog(db)
	renderer := render.New(catalog)
	apiHandler := api.NewHandler(db, pages, catalog, issuer)
	publicPages := handler.NewPublicPages(pages, renderer, pageCache)
	health := handler.NewHealth(db)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5)) // Gzip compression with level 5
	r.Use(chimw.GetHead)     // Handle HEAD requests for uptime monitoring
	r.Use(chimw.Timeout(60 * time.Second))

	r.Method(http.MethodGet, "/health", health)

	// Public rendered pages
	r.Get("/p/{slug}", publicPages.ServePage)

	// Rate limiters: a broad API limit plus a tight one for login
	apiLimiter := middleware.NewGlobalRateLimiter(20, 40)
	loginLimiter := middleware.NewGlobalRateLimiter(1, 5)

	requireAuth := middleware.Auth(issuer, db)
	optionalAuth := middleware.OptionalAuth(issuer, db)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiLimiter.Middleware())

		r.Get("/status", apiHandler.Status)

		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware())
			r.Post("/auth/login", apiHandler.Login)
		})

		// Public reads
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/pages/slug/{slug}", apiHandler.GetPageBySlug)
		})
		r.Get("/catalog/items", apiHandler.ListCatalogItems)

		// Authoring routes
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/auth/me", apiHandler.Me)
			r.Get("/events", apiHandler.ListEvents)

			r.Get("/pages", apiHandler.ListPages)
			r.Post("/pages", apiHandler.CreatePage)
			r.Route("/pages/{id}", func(r chi.Router) {
				r.Get("/", apiHandler.GetPage)
				r.Put("/", apiHandler.UpdatePage)
				r.Delete("/", apiHandler.DeletePage)
				r.Post("/duplicate", apiHandler.DuplicatePage)

				r.Get("/versions", apiHandler.ListVersions)
				r.Post("/versions", apiHandler.CreateVersion)
				r.Delete("/versions/{versionID}", apiHandler.DeleteVersion)
				r.Post("/versions/{versionID}/restore", apiHandler.RestoreVersion)

				r.Post("/sections", apiHandler.AddSection)
				r.Route("/sections/{sectionID}", func(r chi.Router) {
					r.Put("/", apiHandler.UpdateSection)
					r.Delete("/", apiHandler.DeleteSection)
					r.Post("/reorder", apiHandler.ReorderSection)

					r.Post("/components", apiHandler.AddComponent)
					r.Route("/components/{componentID}", func(r chi.Router) {
						r.Put("/", apiHandler.UpdateComponent)
						r.Delete("/", apiHandler.DeleteComponent)
						r.Post("/reorder", apiHandler.ReorderComponent)
					})
				})
			})
		})
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second, // Mitigates slowloris attacks
		MaxHeaderBytes:    1 << 20,          // 1MB max header size
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
