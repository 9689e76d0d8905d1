// Package logging provides structured, leveled logging for the gateway.
package logging

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ContextKey namespaces values the request pipeline stashes on a context.
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	KeyIDKey     ContextKey = "key_id"
)

// Logger wraps logrus.Logger with request-scoped field helpers.
type Logger struct {
	*logrus.Logger
}

// New builds a Logger at the given level ("info", "warn", ...), JSON-formatted.
func New(level string) *Logger {
	l := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	l.SetOutput(os.Stdout)
	return &Logger{Logger: l}
}

// NewFromEnv builds a Logger from LOG_LEVEL, defaulting to "info".
func NewFromEnv() *Logger {
	level := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if level == "" {
		level = "info"
	}
	return New(level)
}

// WithContext attaches request-id and key-id (when present) as log fields.
func (l *Logger) WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(l.Logger)
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok && reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	if keyID, ok := ctx.Value(KeyIDKey).(string); ok && keyID != "" {
		entry = entry.WithField("key_id", keyID)
	}
	return entry
}
