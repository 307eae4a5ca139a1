package observe

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCapturer struct {
	events []*sentry.Event
}

func (r *recordingCapturer) CaptureEvent(event *sentry.Event) *sentry.EventID {
	r.events = append(r.events, event)
	return nil
}

func TestSentryHook_ForwardsErrorsOnly(t *testing.T) {
	capturer := &recordingCapturer{}
	hook := newSentryHook("test", "weather-backcast", capturer)

	lines := []string{
		`{"level":"info","msg":"archive request","timestamp":"2025-06-02T10-00-00.000"}`,
		`{"level":"warn","msg":"stale load dropped","timestamp":"2025-06-02T10-00-00.000"}`,
		`{"level":"error","msg":"archive responded 500","error":"archive responded 500","caller_file":"archive.go","caller_line":42,"timestamp":"2025-06-02T10-00-00.000"}`,
	}
	for _, line := range lines {
		n, err := hook.Write([]byte(line))
		require.NoError(t, err)
		assert.Equal(t, len(line), n)
	}

	require.Len(t, capturer.events, 1)
	event := capturer.events[0]
	assert.Equal(t, sentry.LevelError, event.Level)
	assert.Equal(t, "archive responded 500", event.Message)
	assert.Equal(t, "test", event.Environment)
	assert.Equal(t, "archive.go", event.Extra["CallerFile"])
	assert.Equal(t, 2025, event.Timestamp.Year())
}

func TestSentryHook_IgnoresGarbage(t *testing.T) {
	capturer := &recordingCapturer{}
	hook := newSentryHook("test", "weather-backcast", capturer)

	n, err := hook.Write([]byte("not json"))
	require.NoError(t, err)
	assert.Equal(t, len("not json"), n)
	assert.Empty(t, capturer.events)
}

func TestNewSentryHook_NoDSN(t *testing.T) {
	hook, err := NewSentryHook("test", "weather-backcast", false, "")
	require.NoError(t, err)
	assert.Nil(t, hook)
}
