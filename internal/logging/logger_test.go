package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Level = "warn"

	log, closer := New(cfg, &buf)
	defer closer.Close()

	log.Info("dropped")
	log.Warn("kept", slog.Int("iterations", 7))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, 7.0, record["iterations"])
	assert.Contains(t, record, "timestamp")
	assert.NotContains(t, record, "time")
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log, closer := New(DefaultConfig(), &buf)
	defer closer.Close()

	log.Debug("hidden")
	log.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dal.log")
	cfg := DefaultConfig()
	cfg.File = path

	var fallback bytes.Buffer
	log, closer := New(cfg, &fallback)
	log.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Zero(t, fallback.Len())
}
