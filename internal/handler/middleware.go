package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
)

// SecurityHeaders adds security response headers (CSP, X-Frame-Options, etc.)
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("X-XSS-Protection", "0")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// RateLimit limits each client IP to maxPerMinute requests per minute.
// The client IP comes from chi's RealIP middleware, which must run first.
// Blocked requests get 429 with a JSON error body and Retry-After.
func RateLimit(maxPerMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		maxPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			if w.Header().Get("Retry-After") == "" {
				w.Header().Set("Retry-After", strconv.Itoa(int(time.Minute.Seconds())))
			}
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		}),
	)
}
