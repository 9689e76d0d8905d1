package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ST0x-Technology/st0x.rest.api/internal/apierrors"
	"github.com/ST0x-Technology/st0x.rest.api/internal/auth"
	"github.com/ST0x-Technology/st0x.rest.api/internal/httpjson"
	"github.com/ST0x-Technology/st0x.rest.api/internal/logging"
	"github.com/ST0x-Technology/st0x.rest.api/internal/metrics"
	"github.com/ST0x-Technology/st0x.rest.api/internal/ratelimit"
)

// AuthGuard verifies the Basic-auth credential, then consumes the
// authenticated principal's own rate-limit bucket, per spec §4.6 step (b)
// "auth guard (which also consumes per-key rate-limit bucket)". A failed
// verification never touches the per-key bucket at all — only the global
// bucket GlobalRateLimit already charged, per spec §3's invariant.
func AuthGuard(verifier *auth.Verifier, limiter *ratelimit.Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, apiErr := verifier.Verify(r.Context(), auth.ExtractAuthorizationHeader(r))
			if apiErr != nil {
				httpjson.WriteError(w, apiErr)
				return
			}

			result := limiter.CheckKey(principal.KeyID)
			stampHeaders(w, result)
			if !result.Admitted {
				metrics.RateLimitRejections.WithLabelValues("per_key").Inc()
				httpjson.WriteError(w, apierrors.TooManyRequests("rate limit exceeded"))
				return
			}

			ctx := auth.WithPrincipal(r.Context(), principal)
			ctx = context.WithValue(ctx, logging.KeyIDKey, principal.KeyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminGate rejects any authenticated principal that isn't an admin. It
// must run after AuthGuard has placed a Principal on the context.
func AdminGate() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := auth.PrincipalFromContext(r.Context())
			if apiErr := auth.RequireAdmin(principal); apiErr != nil {
				httpjson.WriteError(w, apiErr)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
