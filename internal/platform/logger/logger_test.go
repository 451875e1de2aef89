package logger

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/pourover/drinks-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "mixed case", logLevel: "Debug"},
		{name: "invalid level falls back to info", logLevel: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.Equal(t, logger, slog.Default())
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Equal(t, slog.Default(), FromContext(ctx))

	scoped := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("trace_id", "abc")
	ctx = WithLogger(ctx, scoped)
	assert.Equal(t, scoped, FromContext(ctx))
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil)).With("component", "test")

	t.Run("uses context logger when present", func(t *testing.T) {
		t.Parallel()
		scoped := slog.New(slog.NewTextHandler(os.Stderr, nil))
		ctx := WithLogger(context.Background(), scoped)
		assert.Equal(t, scoped, FromContextOrDefault(ctx, fallback))
	})

	t.Run("falls back to component logger", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, fallback, FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("nil fallback yields process default", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
	})
}
