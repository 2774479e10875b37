// Package main is the entry point for the HOS trip planner API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for goose
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers "sqlite" driver for the geocode cache

	"github.com/haultrackr/eld-backend/internal/config"
	"github.com/haultrackr/eld-backend/internal/handler"
	"github.com/haultrackr/eld-backend/internal/hos"
	"github.com/haultrackr/eld-backend/internal/middleware"
	"github.com/haultrackr/eld-backend/internal/repo"
	"github.com/haultrackr/eld-backend/internal/routing"
	"github.com/haultrackr/eld-backend/internal/service"
	"github.com/haultrackr/eld-backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Routing client ---------------------------------------------------
	routingOpts := []routing.Option{routing.WithHourlyLimit(cfg.ORSHourlyLimit)}
	if cfg.GeocodeCachePath != "" {
		cacheDB, err := sql.Open("sqlite", cfg.GeocodeCachePath)
		if err != nil {
			slog.Error("failed to open geocode cache", "error", err)
			os.Exit(1)
		}
		defer cacheDB.Close()

		cache, err := routing.NewGeocodeCache(cacheDB)
		if err != nil {
			slog.Error("failed to initialize geocode cache", "error", err)
			os.Exit(1)
		}
		routingOpts = append(routingOpts, routing.WithGeocodeCache(cache))
	}

	orsClient, err := routing.NewClient(cfg.ORSAPIKey, routingOpts...)
	if err != nil {
		slog.Error("failed to create routing client", "error", err)
		os.Exit(1)
	}

	// --- Repos, services, handlers ----------------------------------------
	limits := hos.DefaultLimits()

	tripRepo := repo.NewTripRepo(pool)
	stopRepo := repo.NewStopRepo(pool)
	sheetRepo := repo.NewLogSheetRepo(pool)

	srv := handler.NewServer(
		service.NewTripService(tripRepo, limits),
		service.NewPlanService(tripRepo, stopRepo, sheetRepo, orsClient, limits),
		service.NewLogService(tripRepo, sheetRepo),
		service.NewExportService(tripRepo, sheetRepo),
	)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID and RealIP first so the logger sees them,
	// then logging, panic recovery, and the outer response/request guards.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewCompressionHandler())
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies all pending goose migrations at startup, so a fresh
// deployment needs no separate migration step.
func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	if len(results) > 0 {
		slog.Info("migrations applied", "count", len(results))
	}
	return nil
}
