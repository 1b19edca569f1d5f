package middleware

import (
	"net/http"
	"net/url"
	"strings"

	mw "github.com/yatube-dev/yatube/shared/middleware"
)

const LoginPath = "/auth/login/"

// LoginRequired sends anonymous visitors to the login page and brings them
// back to the page they asked for afterwards. It expects OptionalAuth to
// have run first.
func LoginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if mw.GetUserFromContext(r) == nil {
			http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginURL builds /auth/login/?next=<path> keeping slashes readable.
func LoginURL(next string) string {
	if next == "" {
		return LoginPath
	}
	return LoginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext returns next when it is a local path and fallback otherwise.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}
