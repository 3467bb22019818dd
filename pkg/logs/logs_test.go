package logs

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/mindwell_backend/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"nope":  slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	logger := slog.New(h).With(slog.String("component", "test"))

	logger.Info("hello")
	logger.Warn("careful")

	assert.Equal(t, 2, bytes.Count(debugBuf.Bytes(), []byte("\n")))
	assert.Equal(t, 1, bytes.Count(warnBuf.Bytes(), []byte("\n")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(warnBuf.Bytes()), &rec))
	assert.Equal(t, "careful", rec["msg"])
	assert.Equal(t, "test", rec["component"])

	assert.True(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.Config{}
	cfg.Logging.Level = "debug"
	cfg.Logging.Output.File = config.FileLogConfig{Enabled: true, Path: path, MaxSizeMB: 1}

	logger, cleanup := New(cfg)
	defer cleanup()

	logger.Debug("written")
	assert.FileExists(t, path)
}
