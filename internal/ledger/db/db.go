// Package db opens the ledger database after applying its migrations.
package db

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"finledger/internal/ledger/config"
	"finledger/pkg/db/postgres"
	"finledger/pkg/logger"
	"finledger/pkg/resilience"
)

const (
	LogDBInitializing    = "initializing ledger database"
	LogDBInitialized     = "ledger database initialized successfully"
	LogMigrationStarting = "starting ledger database migrations"
)

const (
	ErrDBMigrations = "failed to apply ledger database migrations"
	ErrDBConnection = "failed to connect to ledger database"
	ErrGetPath      = "failed to get path"
)

const fileScheme = "file://"

// DB is the ledger connection pool.
type DB struct {
	database *postgres.Database
}

// New applies the migrations found at cfg.MigrationsPath and opens the pool.
// Connection attempts are retried cfg.ConnectRetries times.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := MigrationsSource(cfg.MigrationsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	retry := resilience.NewRetry("postgres", resilience.RetryConfig{
		MaxAttempts:    cfg.ConnectRetries,
		InitialBackoff: cfg.ConnectBackoff,
	})

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn, retry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// MigrationsSource turns a directory into a file:// migration source URL.
// Values that already carry a scheme are returned unchanged.
func MigrationsSource(dir string) (string, error) {
	if strings.Contains(dir, "://") {
		return dir, nil
	}
	if filepath.IsAbs(dir) {
		return fileScheme + dir, nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return fileScheme + absPath, nil
}

// Close closes the pool.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool returns the connection pool.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
