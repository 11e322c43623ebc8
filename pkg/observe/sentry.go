package observe

import (
	"encoding/json"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
)

// SentryHook is an io.Writer for NewZapLogger that forwards error level
// entries to Sentry. Other entries are dropped.
type SentryHook struct {
	appEnv  string
	appName string
	hub     *sentry.Hub
}

// entry mirrors the JSON fields written by Logger.Error.
type entry struct {
	Level      string `json:"level"`
	AppName    string `json:"app_name"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
}

func NewSentryHook(appEnv, appName, dsn string, isDebug bool) (*SentryHook, error) {
	opts := sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            isDebug,
		Dsn:              dsn,
		Environment:      appEnv,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       appName,
	}
	if dsn != "" {
		sentryTransport := sentry.NewHTTPTransport()
		sentryTransport.Timeout = _sentryServerRequestTimeout
		opts.Transport = sentryTransport
	}

	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, errors.Wrap(err, "init sentry client")
	}

	return &SentryHook{
		appEnv:  appEnv,
		appName: appName,
		hub:     sentry.NewHub(client, sentry.NewScope()),
	}, nil
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return sentry.LevelFatal
	}

	return sentry.LevelDebug
}

// event converts one encoded log line. It returns nil for entries below
// error level.
func (h *SentryHook) event(p []byte) (*sentry.Event, error) {
	var e entry
	if err := json.Unmarshal(p, &e); err != nil {
		return nil, errors.Wrap(err, "[SentryHook] unmarshal log entry")
	}

	level, err := zapcore.ParseLevel(e.Level)
	if err != nil {
		return nil, errors.Wrap(err, "[SentryHook] parse zap level")
	}
	if level < zapcore.ErrorLevel || e.Message == "" {
		return nil, nil
	}

	event := sentry.NewEvent()
	event.Environment = h.appEnv
	event.ServerName = h.appName
	event.Level = h.mapLevel(level)
	event.Message = e.Message
	if ts, err := time.ParseInLocation(timeLayout, e.Timestamp, time.UTC); err == nil {
		event.Timestamp = ts
	}
	event.Extra["Error"] = e.Error
	event.Extra["CallerFile"] = e.CallerFile
	event.Extra["CallerLine"] = e.CallerLine
	event.Extra["CallerFunc"] = e.CallerFunc
	event.Extra["Stack"] = e.Stack
	event.Exception = append(event.Exception, sentry.Exception{
		Type:  e.Message,
		Value: e.Error,
	})

	return event, nil
}

// Write never fails so a broken Sentry setup cannot block logging.
func (h *SentryHook) Write(p []byte) (int, error) {
	event, err := h.event(p)
	if err == nil && event != nil {
		h.hub.CaptureEvent(event)
	}

	return len(p), nil
}

// Flush waits for buffered events to be delivered.
func (h *SentryHook) Flush() bool {
	return h.hub.Flush(_sentryFlushTimeout)
}
