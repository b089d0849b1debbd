package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"finledger/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Run("development with explicit level", func(t *testing.T) {
		l, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("production with preset level", func(t *testing.T) {
		l, err := logger.NewLogger(logger.Production, "")
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("unknown level", func(t *testing.T) {
		l, err := logger.NewLogger(logger.Production, "loud")
		require.Error(t, err)
		assert.Nil(t, l)
	})
}

func TestFromContext(t *testing.T) {
	t.Run("logger stored in context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})

	t.Run("no logger in context", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})

	t.Run("derived context keeps logger", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		type ctxKeyType struct{}
		ctx := context.WithValue(logger.NewContext(context.Background(), testLogger), ctxKeyType{}, "v")

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})
}

func TestLog(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	t.Run("context logger wins over global", func(t *testing.T) {
		ctxLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		global, err := logger.NewLogger(logger.Production, "error")
		require.NoError(t, err)
		logger.SetGlobalLogger(global)

		assert.Same(t, ctxLogger, logger.Log(logger.NewContext(context.Background(), ctxLogger)))
	})

	t.Run("global logger when context has none", func(t *testing.T) {
		global, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)
		logger.SetGlobalLogger(global)

		assert.Same(t, global, logger.Log(context.Background()))
	})

	t.Run("fallback is a singleton", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		first := logger.Log(context.Background())
		second := logger.Log(context.Background())
		require.NotNil(t, first)
		assert.Same(t, first, second)
	})
}

func TestInitGlobalLoggerWithLevel(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Production, "info"))
	first := logger.Log(context.Background())

	require.NoError(t, logger.InitGlobalLogger(logger.Development))
	assert.Same(t, first, logger.Log(context.Background()), "second init must keep the first logger")
}

func TestRequestIDIsAttached(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logger.NewFromZap(zap.New(core)).With(zap.String("method", "Test"))

	ctx := logger.NewRequestIDContext(context.Background(), "req-42")
	l.Info(ctx, "hello")
	l.Debug(context.Background(), "no id")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "req-42", entries[0].ContextMap()[logger.RequestID])
	assert.Equal(t, "Test", entries[0].ContextMap()["method"])
	_, has := entries[1].ContextMap()[logger.RequestID]
	assert.False(t, has)
}

func TestNewRequestIDContext(t *testing.T) {
	t.Run("generates id when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("keeps provided id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "abc")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "abc", id)
	})

	t.Run("missing id", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}
