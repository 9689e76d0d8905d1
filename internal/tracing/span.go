// Package tracing wraps a handler's business logic in a zerolog-backed
// span so every log line emitted while it runs carries the request's
// method, path, and request-id — layered underneath internal/logging's
// logrus-based request/response summary line (spec §4.5, "Tracing span").
package tracing

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

type spanKey struct{}

// Span is a request-scoped zerolog logger plus its start time, stashed in
// the request context for the duration of a handler's business future.
type Span struct {
	Logger zerolog.Logger
	Start  time.Time
}

// New opens a span bound to method/path/requestID and returns a context
// carrying it. Callers retrieve it with FromContext.
func New(ctx context.Context, w io.Writer, method, path, requestID string) (context.Context, *Span) {
	logger := zerolog.New(w).With().
		Timestamp().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Logger()

	span := &Span{Logger: logger, Start: time.Now()}
	return context.WithValue(ctx, spanKey{}, span), span
}

// FromContext retrieves the span stashed by New, or a discard-logger span
// if none was set (e.g. in tests that bypass the middleware chain).
func FromContext(ctx context.Context) *Span {
	if span, ok := ctx.Value(spanKey{}).(*Span); ok {
		return span
	}
	return &Span{Logger: zerolog.Nop(), Start: time.Now()}
}

// Finish emits a single completion event with elapsed duration and status.
func (s *Span) Finish(status int) {
	s.Logger.Info().
		Int("status", status).
		Dur("duration", time.Since(s.Start)).
		Msg("request completed")
}
