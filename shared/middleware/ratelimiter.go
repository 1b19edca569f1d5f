package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/yatube-dev/yatube/shared/logger"
	"github.com/yatube-dev/yatube/shared/middleware/ratelimiter"
	"github.com/yatube-dev/yatube/shared/utils"
)

func RateLimit(rl *ratelimiter.Limiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return RateLimitWithHandler(rl, getIdentity, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
	})
}

// RateLimitWithHandler lets HTML routes answer with a page instead of a bare 429.
func RateLimitWithHandler(rl *ratelimiter.Limiter, getIdentity func(r *http.Request) (string, error), onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				logger.Log.Warn("rate limit exceeded", "identity", identity, "path", r.URL.Path)
				onLimit(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIP extracts the client IP from RemoteAddr.
// Proxy headers are ignored since they can be spoofed.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}

// GetUserIDFromContext keys limits by the authenticated user.
func GetUserIDFromContext(r *http.Request) (string, error) {
	user := GetUserFromContext(r)
	if user == nil {
		return "", fmt.Errorf("can't get user id")
	}
	return fmt.Sprintf("user_%d", user.Id), nil
}
