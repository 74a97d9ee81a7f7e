package main

import (
	"centre-scheduler-service/internal/adapters/cache"
	"centre-scheduler-service/internal/adapters/repositories"
	"centre-scheduler-service/internal/adapters/routing"
	"centre-scheduler-service/internal/api"
	"centre-scheduler-service/internal/api/handlers"
	"centre-scheduler-service/internal/config"
	"centre-scheduler-service/internal/platform/db"
	"centre-scheduler-service/internal/ports"
	"centre-scheduler-service/internal/services"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Open the centre directory, seed it, wire the optional road routing service and serve the scheduling API.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, dialect, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := repositories.SeedFromJSON(store, dialect, cfg.SeedPath)
	if err != nil {
		return err
	}
	logger.Info().Int("centres", n).Str("path", cfg.SeedPath).Msg("centre directory seeded")

	routeCache, closeCache, err := newRouteCache(ctx, store, dialect)
	if err != nil {
		return err
	}
	defer closeCache()

	var roads ports.RoadRouteProvider
	if cfg.RoutingEnabled {
		provider, err := routing.NewOSRMRoadProvider(cfg.RoutingURL, routeCache, logger)
		if err != nil {
			return err
		}
		roads = provider
		logger.Info().Str("url", cfg.RoutingURL).Str("cache", cfg.CacheBackend).Msg("road routing enabled")
	}

	planner := services.NewPlanner(services.NewRouteOptimizer(cfg.Tuning.Route), roads, logger)

	h := &handlers.Handler{
		Centres:        repositories.NewSQLCentreRepository(store, dialect),
		Planner:        planner,
		Base:           cfg.Base(),
		BaseName:       cfg.BaseName,
		DefaultWindows: cfg.Tuning.DefaultWindows,
		CompareLimit:   cfg.Tuning.CompareLimit,
	}

	// Timeouts allow for a cold road routing cache on plan requests.
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(h, logger, cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	return nil
}

// openStore opens the configured database and ensures the schema exists.
func openStore(ctx context.Context) (*sql.DB, repositories.Dialect, error) {
	dialect, err := repositories.ParseDialect(cfg.DBBackend)
	if err != nil {
		return nil, "", err
	}

	store, err := db.Open(ctx, dialect.DriverName(), cfg.DBDSN)
	if err != nil {
		return nil, "", err
	}

	if err := repositories.InitSchema(store, dialect); err != nil {
		store.Close()
		return nil, "", err
	}

	return store, dialect, nil
}

// newRouteCache picks the road route cache backend. A nil cache disables
// caching; the returned close func is always safe to call.
func newRouteCache(ctx context.Context, store *sql.DB, dialect repositories.Dialect) (ports.RouteCache, func(), error) {
	noop := func() {}

	switch cfg.CacheBackend {
	case config.CacheNone:
		return nil, noop, nil
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisRouteCache(client, cfg.RouteCacheTTL), func() { client.Close() }, nil
	default:
		if dialect == repositories.DialectPostgres {
			return cache.NewSQLRouteCache(store), noop, nil
		}
		return cache.NewSqliteRouteCache(store), noop, nil
	}
}
