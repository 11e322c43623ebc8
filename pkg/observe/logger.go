package observe

import (
	"io"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006-01-02T15-04-05.000"

// Logger writes JSON log entries with caller information and flat
// map[string]any fields.
type Logger struct {
	appEnv  string
	appName string
	l       *zap.Logger
}

type Option func(*options)

type options struct {
	appEnv string
	level  zapcore.Level
}

// WithEnv tags every entry with the application environment.
func WithEnv(env string) Option {
	return func(o *options) { o.appEnv = env }
}

// WithLevel sets the minimum level; unknown names keep debug.
func WithLevel(level string) Option {
	return func(o *options) {
		if lvl, err := zapcore.ParseLevel(level); err == nil {
			o.level = lvl
		}
	}
}

// NewZapLogger builds a Logger writing to every writer given, or to stdout.
func NewZapLogger(appName string, writers ...io.Writer) *Logger {
	return NewZapLoggerWithOptions(appName, nil, writers...)
}

func NewZapLoggerWithOptions(appName string, opts []Option, writers ...io.Writer) *Logger {
	o := options{level: zapcore.DebugLevel}
	for _, opt := range opts {
		opt(&o)
	}

	var multiWriters []zapcore.WriteSyncer

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = timeEncoder(timeLayout, time.UTC)
	cfg.TimeKey = "timestamp"

	if len(writers) == 0 {
		multiWriters = append(multiWriters, os.Stdout)
	} else {
		for _, writer := range writers {
			multiWriters = append(multiWriters, zapcore.AddSync(writer))
		}
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg),
		zapcore.NewMultiWriteSyncer(multiWriters...),
		o.level,
	)

	return &Logger{
		appEnv:  o.appEnv,
		appName: appName,
		l:       zap.New(core),
	}
}

func (l *Logger) Stop() error {
	return l.l.Sync()
}

func (l *Logger) Error(err error, fields ...map[string]any) {
	file, line, funcName := getRuntimeParams(2)
	l.withFields(fields).Error(
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
	l.withFields(fields).Info(msg, l.common()...)
}

func (l *Logger) Warning(msg string, fields ...map[string]any) {
	l.withFields(fields).Warn(msg, l.common()...)
}

func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.withFields(fields).Debug(msg, l.common()...)
}

func (l *Logger) Fatal(msg string, fields ...map[string]any) {
	l.withFields(fields).Fatal(msg, l.common()...)
}

func (l *Logger) withFields(fields []map[string]any) *zap.Logger {
	if len(fields) == 0 {
		return l.l
	}
	return l.l.With(mapToZapFields(fields[0])...)
}

// common must be called directly from a level method so the caller is
// the method's caller.
func (l *Logger) common() []zap.Field {
	file, line, funcName := getRuntimeParams(3)
	return []zap.Field{
		zap.String("app_zone", l.appEnv),
		zap.String("app_name", l.appName),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
	}
}

func mapToZapFields(data map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(data))

	for k, v := range data {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return zapFields
}

// getRuntimeParams reports the frame skip levels up from itself.
func getRuntimeParams(skip int) (file string, line int, funcName string) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "not_defined", 0, "not_defined"
	}
	return file, line, runtime.FuncForPC(pc).Name()
}

func timeEncoder(layout string, location *time.Location) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(location).Format(layout))
	}
}
