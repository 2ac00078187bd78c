package testhelpers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/velo-paris-dashboard/internal/config"
)

const (
	connectAttempts = 10
	firstBackoff    = 500 * time.Millisecond
)

type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB подключается к тестовой базе через lib/pq. Без TEST_DB_HOST тест пропускается.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	cfg, ok := testDatabaseConfig()
	if !ok {
		t.Skip("TEST_DB_HOST is not set, skipping PostgreSQL integration tests")
	}

	var (
		db  *sqlx.DB
		err error
	)
	backoff := firstBackoff
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if db, err = sqlx.Connect("postgres", cfg.DSN()); err == nil {
			break
		}
		t.Logf("database %s not ready (attempt %d/%d): %v", cfg.DBName, attempt, connectAttempts, err)
		time.Sleep(backoff)
		backoff *= 2
	}
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}

	return &TestDB{DB: db, Logger: zaptest.NewLogger(t)}
}

func testDatabaseConfig() (config.DatabaseConfig, bool) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return config.DatabaseConfig{}, false
	}

	port, err := strconv.Atoi(envOr("TEST_DB_PORT", "5433"))
	if err != nil {
		port = 5433
	}

	return config.DatabaseConfig{
		Host:     host,
		Port:     port,
		User:     envOr("TEST_DB_USER", "postgres"),
		Password: envOr("TEST_DB_PASSWORD", "postgres"),
		DBName:   envOr("TEST_DB_NAME", "velo_test"),
		SSLMode:  envOr("TEST_DB_SSLMODE", "disable"),
	}, true
}

func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// Cleanup очищает таблицы; отсутствующие таблицы пропускаются
func (tdb *TestDB) Cleanup(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		var exists bool
		if err := tdb.DB.GetContext(ctx, &exists, "SELECT to_regclass($1) IS NOT NULL", table); err != nil {
			return fmt.Errorf("check table %s: %w", table, err)
		}
		if !exists {
			continue
		}
		if _, err := tdb.DB.ExecContext(ctx, "TRUNCATE TABLE "+pq.QuoteIdentifier(table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
