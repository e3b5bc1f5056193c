package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/services"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/handlers"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/middleware"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/platform/config"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/platform/metrics"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/repositories/database/pgsql"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/repositories/lock"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/repositories/memory"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/pkg/database"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var runMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cmd.Context(), cfg, runMigrations)
		},
	}
	cmd.Flags().BoolVar(&runMigrations, "migrate", false, "Apply pending migrations before serving (postgres only)")

	return cmd
}

func serve(parent context.Context, cfg *config.Config, runMigrations bool) error {
	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	var locker portsrepo.ItemLocker = lock.NewLocalLocker()
	if cfg.RedisAddress != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("Error closing redis client", slog.String("error", err.Error()))
			}
		}()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddress, err)
		}
		locker = lock.NewRedisLocker(rdb, cfg.ItemLockTTL)
		logger.Info("Using redis for item locks and rate limits", slog.String("address", cfg.RedisAddress))
	}

	var repos portsrepo.RepositoryProvider
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store := memory.NewStore(nil)
		if cfg.CatalogSeedFile != "" {
			items, err := memory.LoadCatalogFile(cfg.CatalogSeedFile)
			if err != nil {
				return err
			}
			store.SetCatalog(items)
			logger.Info("Catalog loaded", slog.Int("items", len(items)), slog.String("file", cfg.CatalogSeedFile))
		}
		repos = store.Provider(locker)
	default:
		if runMigrations {
			logger.Info("Running database migrations...")
			if err := database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp); err != nil {
				return err
			}
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return fmt.Errorf("failed to initialize database pool: %w", err)
		}
		defer database.ClosePgxPool(dbPool)
		repos = pgsql.NewRepositoryProvider(dbPool, locker)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	serviceContainer := services.NewServiceContainer(cfg, repos, metrics.New(registry))

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit, rdb)
	if err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter, registry)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
