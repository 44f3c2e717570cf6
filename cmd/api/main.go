package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/GTDGit/gtd_storefront/internal/cache"
	"github.com/GTDGit/gtd_storefront/internal/config"
	"github.com/GTDGit/gtd_storefront/internal/database"
	"github.com/GTDGit/gtd_storefront/internal/handler"
	"github.com/GTDGit/gtd_storefront/internal/middleware"
	"github.com/GTDGit/gtd_storefront/internal/repository"
	"github.com/GTDGit/gtd_storefront/internal/service"
	"github.com/GTDGit/gtd_storefront/internal/sse"
	"github.com/GTDGit/gtd_storefront/internal/utils"
	"github.com/GTDGit/gtd_storefront/internal/worker"
	"github.com/GTDGit/gtd_storefront/internal/workspace"
	"github.com/GTDGit/gtd_storefront/pkg/catalog"
)

// main is the application entrypoint for the storefront server.
func main() {
	envFile := pflag.String("env-file", ".env", "path to an optional .env file")
	migrationsDir := pflag.String("migrations", "migrations", "directory holding SQL migrations")
	pflag.Parse()

	// 1. Load config
	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("persistence", cfg.Persistence.Driver).Msg("starting storefront")

	if cfg.JWTSecret == "" {
		secret, err := utils.GenerateDevSecret()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to generate client cookie secret")
		}
		cfg.JWTSecret = secret
		log.Warn().Msg("JWT_SECRET not set, client cookies will not survive a restart")
	}

	// 3. Persistence backend
	store, closeStore, err := openStore(cfg, *migrationsDir)
	if err != nil {
		log.Error().Err(err).Msg("persistence initialization failed")
		fmt.Fprintf(os.Stderr, "persistence initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	// 4. Catalog client
	catalogClient := catalog.NewClient(catalog.Config{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: cfg.Catalog.Timeout,
		Debug:   !cfg.IsProduction(),
	})

	// 5. Workspaces, services and handlers
	hub := sse.NewHub()
	registry := workspace.NewRegistry(store, hub, catalogClient)
	loginLimiter := middleware.NewInvalidLoginRateLimiter(middleware.DefaultLoginAttempts, middleware.DefaultLoginWindow)

	handlers := &handler.Handlers{
		Health:      handler.NewHealthHandler(catalogClient),
		Listing:     handler.NewListingHandler(),
		Favorites:   handler.NewFavoritesHandler(),
		Product:     handler.NewProductHandler(service.NewProductDetailService(catalogClient)),
		ProductForm: handler.NewProductFormHandler(service.NewProductFormService(catalogClient)),
		Auth:        handler.NewAuthHandler(service.NewAuthService(), loginLimiter),
		Preferences: handler.NewPreferencesHandler(),
		SSE:         handler.NewSSEHandler(hub),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedHosts))
	router.Use(middleware.LoggingMiddleware())
	handler.SetupRoutes(router, handlers, middleware.NewClientMiddleware(cfg.JWTSecret, cfg.IsProduction(), registry))

	// 6. Background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go worker.NewReaperWorker(registry, loginLimiter, cfg.Worker.WorkspaceIdleTTL, cfg.Worker.ReapInterval).Start(ctx)

	// 7. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// openStore builds the configured persistence backend and its cleanup func.
func openStore(cfg *config.Config, migrationsDir string) (cache.Store, func(), error) {
	noop := func() {}

	switch cfg.Persistence.Driver {
	case config.DriverFile:
		store := cache.OpenFileStore(cfg.Persistence.FilePath)
		log.Info().Str("path", store.Path()).Msg("file persistence ready")
		return store, noop, nil

	case config.DriverRedis:
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Msg("redis connected successfully")
		return cache.NewRedisStore(redisClient), func() { _ = redisClient.Close() }, nil

	case config.DriverPostgres:
		db, err := database.Connect(&cfg.DB)
		if err != nil {
			return nil, noop, err
		}
		if err := database.Migrate(db.DB, migrationsDir); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		log.Info().Msg("migrations completed successfully")
		return repository.NewKVRepository(db), func() { _ = db.Close() }, nil

	default:
		log.Warn().Msg("in-memory persistence, favorites are lost on restart")
		return cache.NewMemoryStore(), noop, nil
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
