package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yatube-dev/yatube/shared/domain"
	"github.com/yatube-dev/yatube/shared/middleware/ratelimiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("allows request within rate limit", func(t *testing.T) {
		rl := ratelimiter.New(1, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "user1", nil })(okHandler())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("error getting identity", func(t *testing.T) {
		rl := ratelimiter.New(1, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "", errors.New("Test error") })(okHandler())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("blocks request exceeding rate limit", func(t *testing.T) {
		rl := ratelimiter.New(1, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "user1", nil })(okHandler())

		w1 := httptest.NewRecorder()
		handler.ServeHTTP(w1, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, w1.Code)

		w2 := httptest.NewRecorder()
		handler.ServeHTTP(w2, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w2.Code)
		assert.Equal(t, "Rate limit exceeded, try again later\n", w2.Body.String())
	})

	t.Run("uses identity function to determine client", func(t *testing.T) {
		rl := ratelimiter.New(1, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return r.Header.Get("X-User-ID"), nil })(okHandler())

		send := func(id string) int {
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set("X-User-ID", id)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			return w.Code
		}
		assert.Equal(t, http.StatusOK, send("user1"))
		assert.Equal(t, http.StatusOK, send("user2"))
		assert.Equal(t, http.StatusTooManyRequests, send("user1"))
	})
}

func TestRateLimitWithHandler(t *testing.T) {
	rl := ratelimiter.New(1, 1, time.Minute)
	defer rl.Stop()

	called := false
	handler := RateLimitWithHandler(rl,
		func(r *http.Request) (string, error) { return "ip", nil },
		func(w http.ResponseWriter, r *http.Request) {
			called = true
			http.Redirect(w, r, "/auth/login/", http.StatusSeeOther)
		},
	)(okHandler())

	w1 := httptest.NewRecorder()
	handler.ServeHTTP(w1, httptest.NewRequest("POST", "/auth/login/", nil))
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.False(t, called)

	w2 := httptest.NewRecorder()
	handler.ServeHTTP(w2, httptest.NewRequest("POST", "/auth/login/", nil))
	assert.True(t, called)
	assert.Equal(t, http.StatusSeeOther, w2.Code)
}

func TestGetIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
		wantErr    bool
	}{
		{name: "ipv4 with port", remoteAddr: "192.168.1.100:54321", want: "192.168.1.100"},
		{name: "ipv6 with port", remoteAddr: "[2001:db8::1]:8080", want: "2001:db8::1"},
		{name: "no port", remoteAddr: "127.0.0.1", want: "127.0.0.1"},
		{
			name:       "spoofed headers ignored",
			remoteAddr: "203.0.113.50:12345",
			headers:    map[string]string{"X-Real-IP": "10.0.0.1", "X-Forwarded-For": "10.0.0.2"},
			want:       "203.0.113.50",
		},
		{name: "garbage", remoteAddr: "not-an-ip", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			ip, err := GetIP(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ip)
		})
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	_, err := GetUserIDFromContext(req)
	assert.Error(t, err)

	req = req.WithContext(context.WithValue(req.Context(), UserClaimsKey, &domain.User{Id: 123}))
	id, err := GetUserIDFromContext(req)
	require.NoError(t, err)
	assert.Equal(t, "user_123", id)
}
