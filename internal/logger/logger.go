package logger

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type implLogger struct {
	logger *logrus.Logger
}

// New creates a new Logger instance backed by logrus.
// format "json" produces structured output, anything else is plain text.
func New(level, format string) Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	return &implLogger{logger: l}
}

func (l *implLogger) fields(ctx context.Context) *logrus.Entry {
	if ctx == nil {
		return logrus.NewEntry(l.logger)
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return l.logger.WithField("request_id", id)
	}
	return logrus.NewEntry(l.logger)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.fields(ctx).Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.fields(ctx).Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.fields(ctx).Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.fields(ctx).Errorf(msg, args...)
}

type requestIDKey struct{}

// WithRequestID attaches a request identifier to the context so that every
// log line emitted while handling that request carries it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}
