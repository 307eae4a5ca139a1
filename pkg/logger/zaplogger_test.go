package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestLogger_InfoWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{AppName: "test-app", AppEnv: "test", Writers: []io.Writer{&buf}})

	l.Info("archive request", map[string]any{"lat": 52.52})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "archive request", lines[0]["msg"])
	assert.Equal(t, "test-app", lines[0]["app_name"])
	assert.Equal(t, "test", lines[0]["app_zone"])
	assert.Equal(t, 52.52, lines[0]["lat"])
	assert.Contains(t, lines[0]["caller_file"], "zaplogger_test.go")
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{AppName: "test-app", Level: "warn", Writers: []io.Writer{&buf}})

	l.Debug("dropped")
	l.Info("dropped")
	l.Warning("kept")
	l.Error(errors.New("boom"), map[string]any{"kind": "transport"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "kept", lines[0]["msg"])
	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "boom", lines[1]["error"])
	assert.Equal(t, "transport", lines[1]["kind"])
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("nothing")
	l.Error(errors.New("nothing"))
}
