// Package main is the entry point for the Wayfarer API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
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
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/kpatters/wayfarer/backend/internal/auth"
	"github.com/kpatters/wayfarer/backend/internal/config"
	"github.com/kpatters/wayfarer/backend/internal/handler"
	"github.com/kpatters/wayfarer/backend/internal/middleware"
	"github.com/kpatters/wayfarer/backend/internal/repo"
	"github.com/kpatters/wayfarer/backend/internal/service"
	"github.com/kpatters/wayfarer/backend/internal/suggest"
)

// maxBodyBytes caps incoming request bodies. No endpoint accepts more than a
// small JSON document.
const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	// --- Config -----------------------------------------------------------
	// .env is for local development; it is fine for the file to be absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog JSON handler writes machine-readable output suitable for log
	// aggregators.
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

	// --- Repos and services -----------------------------------------------
	trips := repo.NewTripRepo(pool)
	activities := repo.NewActivityRepo(pool)
	expenses := repo.NewExpenseRepo(pool)
	interests := repo.NewInterestRepo(pool)
	users := repo.NewUserRepo(pool)
	atomic := repo.NewAtomic(pool)

	authService := auth.NewService(users, []byte(cfg.JWTSecret), cfg.TokenTTL)
	tripService := service.NewTripService(trips, activities)
	activityService := service.NewActivityService(trips, activities)
	itineraryService := service.NewItineraryService(trips, activities, atomic)
	expenseService := service.NewExpenseService(trips, expenses)
	interestService := service.NewInterestService(trips, interests)
	suggestService := service.NewSuggestService(trips, interests,
		suggest.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel))
	exportService := service.NewExportService(trips, activities, expenses)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	server := handler.NewServer(
		authService,
		tripService,
		activityService,
		itineraryService,
		expenseService,
		interestService,
		suggestService,
		exportService,
	)
	server.Routes(r, middleware.NewAuthHandler(authService))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
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
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
