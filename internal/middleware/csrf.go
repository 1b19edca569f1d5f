package middleware

import (
	"context"
	"net/http"

	"github.com/yatube-dev/yatube/shared/csrf"
	"github.com/yatube-dev/yatube/shared/logger"
)

type csrfContextKey string

const csrfTokenContextKey csrfContextKey = "csrf_token"

type CSRFConfig struct {
	SecureCookies bool
}

// GenerateCSRFToken makes sure every visitor has a token cookie and exposes
// the token to templates through the request context.
func GenerateCSRFToken(config CSRFConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(csrf.CookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			} else {
				token, err = csrf.GenerateToken()
				if err != nil {
					logger.Log.Error("failed to generate CSRF token", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     csrf.CookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   config.SecureCookies,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   365 * 24 * 60 * 60,
				})
				// the form on this very response must match the new cookie
				r.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: token})
			}

			ctx := context.WithValue(r.Context(), csrfTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateCSRFToken rejects unsafe methods whose form token does not match
// the cookie.
func ValidateCSRFToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(csrf.CookieName)
			if err != nil {
				logger.Log.Warn("CSRF token cookie missing", "path", r.URL.Path)
				http.Error(w, "CSRF token missing", http.StatusForbidden)
				return
			}
			if err := r.ParseForm(); err != nil {
				logger.Log.Error("failed to parse form", "error", err)
				http.Error(w, "Invalid form data", http.StatusBadRequest)
				return
			}

			formToken := r.PostFormValue(csrf.FormField)
			if formToken == "" {
				formToken = r.Header.Get("X-CSRFToken")
			}
			if !csrf.ValidateToken(cookie.Value, formToken) {
				logger.Log.Warn("CSRF token validation failed", "path", r.URL.Path)
				http.Error(w, "CSRF token invalid", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetCSRFTokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenContextKey).(string)
	return token
}
