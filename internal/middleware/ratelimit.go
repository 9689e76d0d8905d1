package middleware

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ST0x-Technology/st0x.rest.api/internal/apierrors"
	"github.com/ST0x-Technology/st0x.rest.api/internal/httpjson"
	"github.com/ST0x-Technology/st0x.rest.api/internal/metrics"
	"github.com/ST0x-Technology/st0x.rest.api/internal/ratelimit"
)

func stampHeaders(w http.ResponseWriter, result ratelimit.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Capacity))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	if !result.Admitted {
		w.Header().Set("Retry-After", strconv.FormatFloat(result.RetryAfter.Seconds(), 'f', 0, 64))
	}
}

// GlobalRateLimit admits or rejects every request against the shared
// global bucket before routing proceeds (spec §4.3, "global first"). On
// rejection it writes the 429 envelope itself and never calls next.
func GlobalRateLimit(limiter *ratelimit.Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := limiter.CheckGlobal()
			stampHeaders(w, result)
			if !result.Admitted {
				metrics.RateLimitRejections.WithLabelValues("global").Inc()
				httpjson.WriteError(w, apierrors.TooManyRequests("rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
