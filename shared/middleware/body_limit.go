package middleware

import "net/http"

// MaxBodySize is large enough for any post form or JSON payload.
const MaxBodySize = 1 << 20

// LimitBody caps how much of a request body handlers may read. Reads past
// the limit fail, so form parsing and JSON decoding reject the request.
func LimitBody(maxSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxSize {
				http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxSize)
			next.ServeHTTP(w, r)
		})
	}
}
