package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/wheresmygrants/grantvotes/internal/adapters/handler/http"
	"github.com/wheresmygrants/grantvotes/internal/adapters/ratelimit"
	"github.com/wheresmygrants/grantvotes/internal/adapters/repository/memory"
	"github.com/wheresmygrants/grantvotes/internal/adapters/repository/postgres"
	"github.com/wheresmygrants/grantvotes/internal/core/ports"
	"github.com/wheresmygrants/grantvotes/internal/core/services"
)

const (
	defaultRateLimit  = 5
	defaultRateWindow = time.Minute
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}

	repo, cleanup, err := buildRepository()
	if err != nil {
		slog.Error("failed to set up vote store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	limiter := ratelimit.New(rateLimitConfig())

	voteService := services.NewVoteService(repo)
	statsService := services.NewStatsService(repo)

	voteHandler := http.NewVoteHandler(voteService)
	statsHandler := http.NewStatsHandler(statsService)
	handler := http.NewHandler(voteHandler, statsHandler, limiter, allowedOrigins())

	addr := "0.0.0.0:" + envOr("PORT", "8080")
	server := &stdhttp.Server{Addr: addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

// buildRepository wires the postgres ledger, falling back to the in-memory
// one when no database is configured (local development).
func buildRepository() (ports.VoteRepository, func(), error) {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		slog.Warn("POSTGRES_HOST not set, using in-memory vote store")
		return memory.NewVoteRepository(), func() {}, nil
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"), os.Getenv("POSTGRES_PASSWORD"),
		host, envOr("POSTGRES_PORT", "5432"), os.Getenv("POSTGRES_DB"))

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}

	return postgres.NewVoteRepository(db), func() { db.Close() }, nil
}

func rateLimitConfig() (int, time.Duration) {
	limit := defaultRateLimit
	if raw := os.Getenv("RATE_LIMIT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	window := defaultRateWindow
	if raw := os.Getenv("RATE_WINDOW"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			window = parsed
		}
	}

	return limit, window
}

func allowedOrigins() []string {
	raw := envOr("ALLOWED_ORIGINS", "https://wheresmygrants.github.io,http://localhost:3000")
	origins := strings.Split(raw, ",")
	for i, o := range origins {
		origins[i] = strings.TrimSpace(o)
	}
	return origins
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
