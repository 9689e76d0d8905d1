// Package requestctx assigns and validates the per-request request-id,
// per spec §4.5.1 and the testable property in spec §8.1.
package requestctx

import (
	"context"

	"github.com/google/uuid"

	"github.com/ST0x-Technology/st0x.rest.api/internal/logging"
)

const (
	headerRequestID = "X-Request-Id"
	maxLength       = 128
)

// HeaderName is the request/response header carrying the request-id.
const HeaderName = headerRequestID

// Resolve returns candidate if it is a valid client-supplied request-id
// (non-empty, <=128 ASCII chars, no control characters), otherwise it
// generates a fresh v4 UUID.
func Resolve(candidate string) string {
	if IsValid(candidate) {
		return candidate
	}
	return uuid.NewString()
}

// WithRequestID stashes id on ctx under the same key internal/logging reads
// from when assembling a request-scoped log entry.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, logging.RequestIDKey, id)
}

// FromContext returns the request-id stashed by WithRequestID, or "" if
// none was set.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(logging.RequestIDKey).(string)
	return id
}

// IsValid reports whether s satisfies the echo policy in spec §8.1.
func IsValid(s string) bool {
	if s == "" || len(s) > maxLength {
		return false
	}
	for _, r := range s {
		if r > 127 || r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
