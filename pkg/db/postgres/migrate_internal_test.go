package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr      error
	version    uint
	dirty      bool
	versionErr error
	upCalls    int
}

func (f *fakeMigrator) Up() error {
	f.upCalls++
	return f.upErr
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.versionErr
}

func TestApplyMigrations(t *testing.T) {
	ctx := context.Background()

	t.Run("pending migrations applied", func(t *testing.T) {
		m := &fakeMigrator{version: 1}

		require.NoError(t, applyMigrations(ctx, m))
		assert.Equal(t, 1, m.upCalls)
	})

	t.Run("no change is not an error", func(t *testing.T) {
		m := &fakeMigrator{upErr: migrate.ErrNoChange, version: 1}

		require.NoError(t, applyMigrations(ctx, m))
	})

	t.Run("empty source leaves no version", func(t *testing.T) {
		m := &fakeMigrator{upErr: migrate.ErrNoChange, versionErr: migrate.ErrNilVersion}

		require.NoError(t, applyMigrations(ctx, m))
	})

	t.Run("up failure", func(t *testing.T) {
		upErr := errors.New("syntax error at or near")
		m := &fakeMigrator{upErr: upErr}

		err := applyMigrations(ctx, m)

		require.ErrorIs(t, err, upErr)
		assert.Contains(t, err.Error(), ErrApplyMigrations)
	})

	t.Run("dirty schema", func(t *testing.T) {
		m := &fakeMigrator{upErr: migrate.ErrNoChange, version: 1, dirty: true}

		err := applyMigrations(ctx, m)

		require.ErrorIs(t, err, ErrDirtySchema)
		assert.Contains(t, err.Error(), "version 1")
	})

	t.Run("version lookup failure", func(t *testing.T) {
		versionErr := errors.New("connection reset")
		m := &fakeMigrator{version: 1, versionErr: versionErr}

		err := applyMigrations(ctx, m)

		require.ErrorIs(t, err, versionErr)
		assert.Contains(t, err.Error(), ErrReadSchemaVersion)
	})
}
