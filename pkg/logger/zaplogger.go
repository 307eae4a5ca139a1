package logger

import (
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timestampLayout = "2006-01-02T15-04-05.000"

type Logger struct {
	appEnv  string
	appName string
	l       *zap.Logger
}

// Options configures a Logger. Zero values give a debug-level logger
// writing JSON to stdout.
type Options struct {
	AppName string
	AppEnv  string
	Level   string
	Writers []io.Writer
}

// NewZapLogger builds a debug-level logger, mostly for tests and tools.
func NewZapLogger(appName string, writers ...io.Writer) *Logger {
	return New(Options{AppName: appName, Writers: writers})
}

func New(opts Options) *Logger {
	var multiWriters []zapcore.WriteSyncer

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = timeEncoder(timestampLayout, time.UTC)
	cfg.TimeKey = "timestamp"

	if len(opts.Writers) == 0 {
		multiWriters = append(multiWriters, os.Stdout)
	} else {
		for _, writer := range opts.Writers {
			multiWriters = append(multiWriters, zapcore.AddSync(writer))
		}
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.NewMultiWriteSyncer(multiWriters...),
		parseLevel(opts.Level),
	)

	return &Logger{
		appEnv:  opts.AppEnv,
		appName: opts.AppName,
		l:       zap.New(core),
	}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{l: zap.NewNop()}
}

func (l *Logger) Stop() error {
	return l.l.Sync()
}

func (l *Logger) Error(err error, fields ...map[string]any) {
	file, line, funcName := getRuntimeParams(2)
	l.l.WithOptions(zap.Fields(fieldsOf(fields)...)).Error(
		err.Error(),
		zap.String("app_zone", l.appEnv),
		zap.String("app_name", l.appName),
		zap.String("error", err.Error()),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
		zap.Stack("stack"),
	)
}

func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.write(zapcore.InfoLevel, msg, fields)
}

func (l *Logger) Warning(msg string, fields ...map[string]any) {
	l.write(zapcore.WarnLevel, msg, fields)
}

func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.write(zapcore.DebugLevel, msg, fields)
}

func (l *Logger) Fatal(msg string, fields ...map[string]any) {
	l.write(zapcore.FatalLevel, msg, fields)
}

func (l *Logger) write(level zapcore.Level, msg string, fields []map[string]any) {
	ce := l.l.WithOptions(zap.Fields(fieldsOf(fields)...)).Check(level, msg)
	if ce == nil {
		return
	}

	file, line, funcName := getRuntimeParams(3)
	ce.Write(
		zap.String("app_zone", l.appEnv),
		zap.String("app_name", l.appName),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
	)
}

func fieldsOf(fields []map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	return mapToZapFields(fields[0])
}

func mapToZapFields(data map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(data))

	for k, v := range data {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return zapFields
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.DebugLevel
	}
}

// getRuntimeParams reports the frame skip levels above itself.
func getRuntimeParams(skip int) (file string, line int, funcName string) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "not_defined", 0, "not_defined"
	}
	return file, line, runtime.FuncForPC(pc).Name()
}

func timeEncoder(layout string, location *time.Location) func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		t = t.In(location)
		type appendTimeEncoder interface {
			AppendTimeLayout(time.Time, string)
		}
		if enc, ok := enc.(appendTimeEncoder); ok {
			enc.AppendTimeLayout(t, layout)
			return
		}
		enc.AppendString(t.Format(layout))
	}
}
