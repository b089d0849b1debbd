// Package postgres opens pgx connection pools and applies migrations.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"finledger/pkg/logger"
	"finledger/pkg/resilience"
)

const (
	LogConnecting        = "connecting to Postgres database"
	LogConnected         = "successfully connected to Postgres"
	LogClosing           = "closing Postgres connection pool"
	LogMigrationsApplied = "database migrations successfully applied"
)

const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

// Database owns a Postgres connection pool.
type Database struct {
	pool *pgxpool.Pool
}

// New connects to dsn and pings the server. When retry is not nil the
// pool creation and ping are retried with it.
func New(ctx context.Context, dsn string, minConn, maxConn int, retry *resilience.Retry) (*Database, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogConnecting)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}

	poolCfg.MinConns = int32(minConn)
	poolCfg.MaxConns = int32(maxConn)

	var pool *pgxpool.Pool
	connect := func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrCreatePool, err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return fmt.Errorf("%s: %w", ErrPingDatabase, err)
		}
		pool = p
		return nil
	}

	if retry != nil {
		err = retry.Execute(ctx, connect)
	} else {
		err = connect(ctx)
	}
	if err != nil {
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, LogConnected)
	return &Database{pool: pool}, nil
}

// Pool returns the underlying pool.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close closes the pool.
func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogClosing)
	db.pool.Close()
}

// Ping checks that the database answers.
func (db *Database) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}
