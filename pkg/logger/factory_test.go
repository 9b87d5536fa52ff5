package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/commitment/pkg/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))
	require.NotNil(t, log)

	log.Debug("dropped")
	log.Info("submission accepted", slog.String("id", "msg-1"))

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1, "default level is info")
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "submission accepted", entries[0]["msg"])
	assert.Equal(t, "msg-1", entries[0]["id"])
}

func TestNew_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		logLevel string
		expected []string
	}{
		{name: "empty keeps info", logLevel: "", expected: []string{"INFO", "WARN", "ERROR"}},
		{name: "debug", logLevel: "debug", expected: []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{name: "warn", logLevel: "warn", expected: []string{"WARN", "ERROR"}},
		{name: "error", logLevel: "ERROR", expected: []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			level, err := logger.ParseLevel(tt.logLevel)
			require.NoError(t, err)

			buf := &bytes.Buffer{}
			log := logger.New(logger.WithOutput(buf), logger.WithLevel(level))
			log.Debug("d")
			log.Info("i")
			log.Warn("w")
			log.Error("e")

			var got []string
			for _, entry := range decodeLines(t, buf) {
				got = append(got, entry["level"].(string))
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNew_LevelAfterEnvironment(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithStaging("commitment"),
		logger.WithLevel(slog.LevelWarn),
	)
	log.Info("rate limit store ready")
	log.Warn("rate limiter unavailable, allowing request")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "staging", entries[0]["env"])
	assert.Equal(t, "commitment", entries[0]["service"])
}

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(logger.WithOutput(buf), logger.WithFormat(logger.FormatText)).Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("last format option wins", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		logger.New(
			logger.WithOutput(buf),
			logger.WithTextFormatter(),
			logger.WithJSONFormatter(),
		).Info("hello")
		entries := decodeLines(t, buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "hello", entries[0]["msg"])
	})

	t.Run("unknown format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})
}

func TestNew_HandlerOptions(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithHandlerOptions(&slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{}
				}
				return a
			},
		}),
		logger.WithHandlerOptions(nil),
	)
	log.Debug("composed email")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "DEBUG", entries[0]["level"])
	assert.NotContains(t, entries[0], slog.TimeKey)
}

func TestNew_ContextValue(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextValue("client_ip", ctxKey{}),
		logger.WithContextValue("", ctxKey{}),
		logger.WithContextValue("ignored", nil),
		logger.WithContextExtractors(nil),
	)

	log.InfoContext(context.WithValue(context.Background(), ctxKey{}, "203.0.113.7"), "with address")
	log.InfoContext(context.Background(), "without address")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "203.0.113.7", entries[0]["client_ip"])
	assert.NotContains(t, entries[1], "client_ip")
	assert.NotContains(t, entries[0], "ignored")
}

func TestNew_NilOutputIgnored(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithOutput(nil))
	log.Info("still buffered")
	assert.Contains(t, buf.String(), "still buffered")
}

func TestNew_EmptyServiceKeepsDefaults(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithStaging(""))
	log.Info("msg")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0], "env")
	assert.NotContains(t, entries[0], "service")
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(
		logger.WithOutput(buf),
		logger.WithAttr(slog.String("service", "commitment")),
	))
	slog.Info("default")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "default", entries[0]["msg"])
	assert.Equal(t, "commitment", entries[0]["service"])
}
