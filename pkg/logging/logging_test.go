package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/glare-project/glare/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(level logging.Level) (*logging.Logger, *bytes.Buffer) {
	l := logging.NewLogger(level)
	var buf bytes.Buffer
	l.SetOutput(&buf)
	return l, &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferedLogger(logging.LevelWarn)

	l.Debug("debug msg")
	l.Info("info msg")
	l.Warn("warn msg")
	l.Error("error msg")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "warn msg")
	assert.Contains(t, lines[1], "error msg")
}

func TestStructuredFields(t *testing.T) {
	l, buf := newBufferedLogger(logging.LevelInfo)

	l.WithFields(map[string]any{"repository": "r1"}).Info("reconciled", map[string]any{"snapshots": 3})

	var entry logging.LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, logging.LevelInfo, entry.Level)
	assert.Equal(t, "reconciled", entry.Message)
	assert.Equal(t, "r1", entry.Fields["repository"])
	assert.Equal(t, float64(3), entry.Fields["snapshots"])
}

func TestWarnOnce_DeduplicatesByKey(t *testing.T) {
	l, buf := newBufferedLogger(logging.LevelInfo)

	l.WarnOnce("shape:object", "unrecognized listing shape")
	l.WarnOnce("shape:object", "unrecognized listing shape")
	l.WarnOnce("shape:number", "unrecognized listing shape")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestErrorErr_IncludesErrorField(t *testing.T) {
	l, buf := newBufferedLogger(logging.LevelError)

	l.ErrorErr("refresh failed", assert.AnError)

	var entry logging.LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, assert.AnError.Error(), entry.Fields["error"])
}
