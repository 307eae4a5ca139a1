package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
	_logTimestampLayout                       = "2006-01-02T15-04-05.000"
)

// EventCapturer is the part of the Sentry hub the hook needs.
type EventCapturer interface {
	CaptureEvent(event *sentry.Event) *sentry.EventID
}

// SentryHook receives the logger's JSON lines and forwards error-level
// entries to Sentry. It is an io.Writer so it can sit next to stdout in the
// logger's multi-writer.
type SentryHook struct {
	appEnv   string
	appName  string
	capturer EventCapturer
}

// NewSentryHook initialises the Sentry client. It returns nil when dsn is
// empty, in which case nothing is reported.
func NewSentryHook(appEnv, appName string, isDebug bool, dsn string) (*SentryHook, error) {
	if dsn == "" {
		return nil, nil
	}

	sentryTransport := sentry.NewHTTPTransport()
	sentryTransport.Timeout = _sentryServerRequestTimeout

	if err := sentry.Init(sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            isDebug,
		Dsn:              dsn,
		Environment:      appEnv,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       appName,
		Transport:        sentryTransport,
	}); err != nil {
		return nil, errors.Wrap(err, "sentry init")
	}

	return newSentryHook(appEnv, appName, sentry.CurrentHub()), nil
}

func newSentryHook(appEnv, appName string, capturer EventCapturer) *SentryHook {
	return &SentryHook{
		appEnv:   appEnv,
		appName:  appName,
		capturer: capturer,
	}
}

// Flush waits for buffered events to be delivered.
func (h *SentryHook) Flush() {
	sentry.Flush(_sentryFlushTimeout)
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.DebugLevel, zapcore.InvalidLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel, zapcore.DPanicLevel:
		return sentry.LevelFatal
	}

	return sentry.LevelDebug
}

type logLine struct {
	Level      string `json:"level"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
}

// Write never fails: a line that cannot be forwarded is reported on the
// standard logger and dropped.
func (h *SentryHook) Write(p []byte) (int, error) {
	var line logLine
	if err := json.Unmarshal(p, &line); err != nil {
		log.Println(errors.Wrap(err, "[SentryHook] decode log line").Error())
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(line.Level)
	if err != nil {
		log.Println(errors.Wrap(err, "[SentryHook] parse zap level").Error())
		return len(p), nil
	}

	if level < zapcore.ErrorLevel || line.Message == "" {
		return len(p), nil
	}

	timestamp, err := time.ParseInLocation(_logTimestampLayout, line.Timestamp, time.UTC)
	if err != nil {
		timestamp = time.Now().UTC()
	}

	event := sentry.NewEvent()
	event.Environment = h.appEnv
	event.Level = h.mapLevel(level)
	event.Timestamp = timestamp
	event.Message = line.Message
	event.Extra["AppName"] = h.appName
	event.Extra["Error"] = line.Error
	event.Extra["CallerFile"] = line.CallerFile
	event.Extra["CallerLine"] = line.CallerLine
	event.Extra["CallerFunc"] = line.CallerFunc
	event.Extra["Stack"] = line.Stack
	event.Exception = append(event.Exception, sentry.Exception{
		Type:  line.Message,
		Value: line.Error,
	})

	h.capturer.CaptureEvent(event)

	return len(p), nil
}
