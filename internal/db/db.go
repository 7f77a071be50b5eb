package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"paygate-be/internal/config"
	"paygate-be/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

func buildDSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable connect_timeout=5",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)
}

// NewDatabase opens the Postgres pool and checks it answers.
func NewDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	return newDatabaseWithDriver(ctx, cfg, "postgres")
}

func newDatabaseWithDriver(ctx context.Context, cfg *config.Config, driverName string) (*sql.DB, error) {
	db, err := sql.Open(driverName, buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if err := ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping DB: %w", err)
	}
	return nil
}

// InitDB is NewDatabase for the composition root: it exits on failure.
func InitDB(cfg *config.Config) *sql.DB {
	db, err := NewDatabase(context.Background(), cfg)
	if err != nil {
		logger.L().Fatal("Failed to initialize database", zap.Error(err))
	}

	logger.L().Info("Database connection established",
		zap.String("host", cfg.DBHost),
		zap.String("db", cfg.DBName),
	)
	return db
}
