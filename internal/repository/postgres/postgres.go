package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/config"
)

const (
	connectAttempts = 3
	connectBackoff  = time.Second
	pingTimeout     = 5 * time.Second
)

// DB - пул sqlx поверх драйвера pgx; источник показаний, а не хранилище
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New открывает пул и ждёт, пока база ответит на ping.
// Несколько попыток нужны, когда postgres стартует вместе с сервисом (docker compose).
func New(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	sqlDB, err := sqlx.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	db := &DB{DB: sqlDB, logger: logger.Named("postgres")}

	for attempt := 1; ; attempt++ {
		err = db.Health(ctx)
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to ping database after %d attempts: %w", attempt, err)
		}

		db.logger.Warn("PostgreSQL not ready", zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-time.After(connectBackoff * time.Duration(attempt)):
		case <-ctx.Done():
			sqlDB.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", ctx.Err())
		}
	}

	db.logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.String("readings_table", cfg.ReadingsTable))

	return db, nil
}

// Wrap - для тестов с уже открытым подключением
func Wrap(sqlDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{DB: sqlDB, logger: logger.Named("postgres")}
}

// Health - ping с собственным таймаутом, используется и в /health
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return db.PingContext(ctx)
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}
