package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube-dev/yatube/shared/csrf"
)

func TestGenerateCSRFToken(t *testing.T) {
	var seen string
	handler := GenerateCSRFToken(CSRFConfig{SecureCookies: true})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetCSRFTokenFromContext(r)
			w.WriteHeader(http.StatusOK)
		}),
	)

	t.Run("new visitor gets a cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, csrf.CookieName, cookies[0].Name)
		assert.True(t, cookies[0].Secure)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, cookies[0].Value, seen)
	})

	t.Run("existing cookie is reused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: "existing"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Result().Cookies())
		assert.Equal(t, "existing", seen)
	})
}

func TestValidateCSRFToken(t *testing.T) {
	token := "test-token-123"

	tests := []struct {
		name           string
		method         string
		cookie         *http.Cookie
		formToken      string
		header         string
		expectedStatus int
	}{
		{name: "valid POST", method: http.MethodPost, cookie: &http.Cookie{Name: csrf.CookieName, Value: token}, formToken: token, expectedStatus: http.StatusOK},
		{name: "GET skips validation", method: http.MethodGet, expectedStatus: http.StatusOK},
		{name: "missing cookie", method: http.MethodPost, formToken: token, expectedStatus: http.StatusForbidden},
		{name: "missing form token", method: http.MethodPost, cookie: &http.Cookie{Name: csrf.CookieName, Value: token}, expectedStatus: http.StatusForbidden},
		{name: "mismatch", method: http.MethodPost, cookie: &http.Cookie{Name: csrf.CookieName, Value: token}, formToken: "other", expectedStatus: http.StatusForbidden},
		{name: "header token", method: http.MethodPost, cookie: &http.Cookie{Name: csrf.CookieName, Value: token}, header: token, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := ValidateCSRFToken()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			form := url.Values{}
			if tt.formToken != "" {
				form.Set(csrf.FormField, tt.formToken)
			}
			req := httptest.NewRequest(tt.method, "/create/", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if tt.header != "" {
				req.Header.Set("X-CSRFToken", tt.header)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
