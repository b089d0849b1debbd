package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"finledger/pkg/logger"
)

const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrReadSchemaVersion       = "failed to read schema version"
)

// ErrDirtySchema is returned when a previous migration stopped halfway and
// the schema version needs to be forced by hand.
var ErrDirtySchema = errors.New("database schema is dirty")

type migrator interface {
	Up() error
	Version() (uint, bool, error)
}

// MigrateDSN applies every pending migration found at migrationsPath.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) error {
	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", migrationsPath))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer m.Close()

	return applyMigrations(ctx, m)
}

func applyMigrations(ctx context.Context, m migrator) error {
	log := logger.Log(ctx)

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(upErr))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, upErr)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info(ctx, LogMigrationsApplied, zap.Bool("empty", true))
		return nil
	case err != nil:
		log.Error(ctx, ErrReadSchemaVersion, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrReadSchemaVersion, err)
	case dirty:
		log.Error(ctx, ErrDirtySchema.Error(), zap.Uint("version", version))
		return fmt.Errorf("%s: version %d: %w", ErrApplyMigrations, version, ErrDirtySchema)
	}

	log.Info(ctx, LogMigrationsApplied,
		zap.Uint("version", version),
		zap.Bool("changed", upErr == nil))
	return nil
}
