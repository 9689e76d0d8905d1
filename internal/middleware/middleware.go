// Package middleware composes the fixed request pipeline every route
// traverses (spec §4.5): request-id, rate-limit headers, tracing span,
// usage logging, and panic recovery. Auth and admin gating (AuthGuard,
// AdminGate in auth.go) build on internal/auth and are wired only on the
// protected subrouters in internal/httpapi, since only protected routes
// need them.
package middleware

import (
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ST0x-Technology/st0x.rest.api/internal/apierrors"
	"github.com/ST0x-Technology/st0x.rest.api/internal/httpjson"
	"github.com/ST0x-Technology/st0x.rest.api/internal/logging"
	"github.com/ST0x-Technology/st0x.rest.api/internal/metrics"
	"github.com/ST0x-Technology/st0x.rest.api/internal/requestctx"
	"github.com/ST0x-Technology/st0x.rest.api/internal/tracing"
)

// responseWriter wraps http.ResponseWriter to capture the status code for
// usage logging, the same pattern the ambient stack uses elsewhere.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// RequestID assigns or echoes X-Request-Id and stashes it in the request
// context ahead of every other fairing, per spec §4.5 step 1.
func RequestID() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestctx.Resolve(r.Header.Get(requestctx.HeaderName))
			w.Header().Set(requestctx.HeaderName, id)
			ctx := requestctx.WithRequestID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Tracing opens a request-scoped zerolog span around the business future
// so every log line it emits carries method/path/request-id, per spec
// §4.5 step 3. sink receives the span's structured events; cmd/gateway
// wires it to a real file or stdout, tests typically pass io.Discard. It
// also records the route's latency histogram, since this is the one place
// in the pipeline that already times the full handler and knows the
// matched route template.
func Tracing(sink io.Writer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := requestctx.FromContext(r.Context())
			ctx, span := tracing.New(r.Context(), sink, r.Method, r.URL.Path, requestID)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			span.Finish(wrapped.statusCode)
			metrics.RequestDuration.
				WithLabelValues(routeTemplate(r), strconv.Itoa(wrapped.statusCode)).
				Observe(time.Since(span.Start).Seconds())
		})
	}
}

// routeTemplate returns the matched mux route pattern (e.g.
// "/v1/order/{orderHash}") so the duration histogram doesn't get a
// cardinality explosion from raw path values, falling back to the raw
// path when no route matched (e.g. a 404).
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

// UsageLogger emits the structured completion line spec §4.5 step 4
// requires: status, duration, and (if authenticated) the key-id.
func UsageLogger(logger *logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			logger.WithContext(r.Context()).WithFields(map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      wrapped.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
			}).Info("request completed")
		})
	}
}

// Recover converts a panic anywhere downstream into a 500 Internal error
// envelope instead of crashing the listener goroutine.
func Recover(logger *logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.WithContext(r.Context()).WithFields(map[string]interface{}{
						"panic": fmt.Sprintf("%v", rec),
						"stack": string(debug.Stack()),
					}).Error("panic recovered")
					httpjson.WriteError(w, apierrors.Wrap(apierrors.KindInternal, "internal server error", fmt.Errorf("%v", rec)))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
