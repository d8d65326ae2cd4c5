package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level string) (Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLoggerWithWriter(&buf, level), &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines[len(lines)-1], "nothing was logged")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	assert.NotNil(t, logger)
	assert.IsType(t, &zerologLogger{}, logger)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"off", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"unknown", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
		})
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(Logger)
		level string
	}{
		{"debug", func(l Logger) { l.Debug("debug message") }, "debug"},
		{"info", func(l Logger) { l.Info("info message") }, "info"},
		{"warn", func(l Logger) { l.Warn("warn message") }, "warn"},
		{"error", func(l Logger) { l.Error("error message") }, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger("debug")
			tt.log(logger)

			entry := lastEntry(t, buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.name+" message", entry["message"])
			assert.Contains(t, entry, "time")
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger("error")
	logger.Debug("filtered debug")
	logger.Info("filtered info")
	logger.Warn("filtered warn")
	assert.Empty(t, buf.String())

	logger.Error("kept")
	assert.Contains(t, buf.String(), "kept")

	silent, buf := newBufferLogger("off")
	silent.Error("nothing")
	assert.Empty(t, buf.String())
}

func TestWithField(t *testing.T) {
	logger, buf := newBufferLogger("info")
	logger.
		WithField("session_id", "s-1").
		WithField("element_count", 3).
		WithField("hero", true).
		Info("editor opened")

	entry := lastEntry(t, buf)
	assert.Equal(t, "s-1", entry["session_id"])
	assert.Equal(t, float64(3), entry["element_count"])
	assert.Equal(t, true, entry["hero"])
}

func TestWithFields(t *testing.T) {
	logger, buf := newBufferLogger("info")
	child := logger.WithFields(map[string]interface{}{
		"keyword": "hello",
		"missing": nil,
	})
	child.WithField("section", "Body").Info("element added")

	entry := lastEntry(t, buf)
	assert.Equal(t, "hello", entry["keyword"])
	assert.Nil(t, entry["missing"])
	assert.Contains(t, entry, "missing")
	assert.Equal(t, "Body", entry["section"])

	t.Run("parent is not modified", func(t *testing.T) {
		buf.Reset()
		logger.Info("plain")
		entry := lastEntry(t, buf)
		assert.NotContains(t, entry, "keyword")
		assert.NotSame(t, logger, child)
	})

	t.Run("empty map", func(t *testing.T) {
		buf.Reset()
		logger.WithFields(map[string]interface{}{}).Info("no fields")
		assert.Equal(t, "no fields", lastEntry(t, buf)["message"])
	})
}
