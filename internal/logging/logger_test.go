package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{"DEBUG", DEBUG},
		{" warn ", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"info", INFO},
		{"", INFO},
		{"verbose", INFO},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Config{Level: INFO, JSONFormat: true, Writer: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.With("component", "metrics").Info("engine ready", "rows", 10)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "engine ready", entry["msg"])
	assert.Equal(t, "metrics", entry["component"])
	assert.EqualValues(t, 10, entry["rows"])
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fairlens.log")
	var buf bytes.Buffer

	logger, err := NewLogger(Config{Level: DEBUG, OutputFile: path, Writer: &buf})
	require.NoError(t, err)
	logger.Warn("zero positives in group", "group", "female")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "zero positives in group")
	assert.Contains(t, buf.String(), "group=female")
}

func TestRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fairlens.log")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 64), 0644))

	logger, err := NewLogger(Config{OutputFile: path, MaxSize: 32, Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	defer logger.Close()

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err, "oversized log should be rotated to .1")
}

func TestDebugConfigAddsSource(t *testing.T) {
	var buf bytes.Buffer
	cfg := DebugConfig()
	cfg.Writer = &buf

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	logger.Debug("bins computed")

	assert.Contains(t, buf.String(), "bins computed")
	assert.Contains(t, buf.String(), "source=")
}

func TestProductionConfig(t *testing.T) {
	cfg := ProductionConfig("/var/log/fairlens.log")
	assert.Equal(t, INFO, cfg.Level)
	assert.Equal(t, "/var/log/fairlens.log", cfg.OutputFile)
	assert.Equal(t, int64(50*1024*1024), cfg.MaxSize)
	assert.Equal(t, 10, cfg.MaxBackups)
	assert.True(t, cfg.JSONFormat)
}

func TestGetLogFilePathWithoutLogger(t *testing.T) {
	if globalLogger == nil {
		assert.Empty(t, GetLogFilePath())
	}
}
