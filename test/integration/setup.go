package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/wheresmygrants/grantvotes/internal/adapters/handler/http"
	"github.com/wheresmygrants/grantvotes/internal/adapters/ratelimit"
	votespg "github.com/wheresmygrants/grantvotes/internal/adapters/repository/postgres"
	"github.com/wheresmygrants/grantvotes/internal/core/services"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

type testApp struct {
	DB        *sql.DB
	Server    *httptest.Server
	Client    *http.Client
	container testcontainers.Container
}

// setupTestApp boots a postgres container and the full HTTP stack on top
// of it. The limiter is sized generously so write-heavy tests are not
// throttled; the throttling path has its own test with a tight limit.
func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()

	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, applyMigrations(db))

	return newTestApp(db, container, 1000)
}

func setupTestAppWithRateLimit(t *testing.T, limit int) *testApp {
	t.Helper()
	ctx := context.Background()

	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, applyMigrations(db))

	return newTestApp(db, container, limit)
}

func newTestApp(db *sql.DB, container testcontainers.Container, rateLimit int) *testApp {
	repo := votespg.NewVoteRepository(db)
	voteService := services.NewVoteService(repo)
	statsService := services.NewStatsService(repo)
	limiter := ratelimit.New(rateLimit, time.Minute)

	h := handler.NewHandler(
		handler.NewVoteHandler(voteService),
		handler.NewStatsHandler(statsService),
		limiter,
		[]string{"*"},
	)
	server := httptest.NewServer(h)

	return &testApp{
		DB:        db,
		Server:    server,
		Client:    server.Client(),
		container: container,
	}
}

func (a *testApp) Teardown(t *testing.T) {
	t.Helper()

	a.Server.Close()
	require.NoError(t, a.DB.Close())
	require.NoError(t, a.container.Terminate(context.Background()))
}
