package http

import (
	"net"
	"net/http"
	"strings"

	"github.com/wheresmygrants/grantvotes/internal/core/domain"
	"github.com/wheresmygrants/grantvotes/internal/core/ports"
)

// RateLimit gates a route on the limiter, keyed by client IP. Rejected
// requests never reach the service or the store.
func RateLimit(limiter ports.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				w.Header().Set("Retry-After", "60")
				http.Error(w, domain.ErrTooManyRequests.Error(), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers X-Forwarded-For, then X-Real-IP, then RemoteAddr. This
// identifies a network origin for abuse mitigation only; callers behind a
// shared NAT or proxy share a key.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
