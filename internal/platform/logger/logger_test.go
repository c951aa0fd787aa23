package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
	}
	for name, want := range cases {
		got, ok := logger.ParseLevel(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	got, ok := logger.ParseLevel("verbose")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, got)
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON at or above the level", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := logger.New(&buf, "warn")

		l.Info("hidden")
		l.Warn("shown", "component", "test")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
		assert.Equal(t, "shown", entry["msg"])
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "test", entry["component"])
	})

	t.Run("unknown level warns and uses info", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		l := logger.New(&buf, "loud")
		l.Debug("hidden")
		l.Info("visible")

		out := buf.String()
		assert.Contains(t, out, "invalid log level configured")
		assert.Contains(t, out, "visible")
		assert.NotContains(t, out, "hidden")
	})
}

func TestSetupWithFile(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	path := filepath.Join(t.TempDir(), "quill.log")
	l, closer, err := logger.Setup(logger.LoggerConfig{
		Level:      "info",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, l)

	l.Info("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
	assert.Same(t, l, slog.Default())
}

func TestContext(t *testing.T) {
	t.Parallel()

	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	stored := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))

	ctx := logger.WithLogger(context.Background(), stored)
	assert.Same(t, stored, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, stored, logger.FromContext(ctx))
}
