package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitBody(t *testing.T) {
	var readErr error
	handler := LimitBody(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("small body passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny")))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NoError(t, readErr)
	})

	t.Run("declared oversize is rejected up front", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too long body")))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("undeclared oversize fails on read", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too long body"))
		req.ContentLength = -1
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		var maxErr *http.MaxBytesError
		assert.ErrorAs(t, readErr, &maxErr)
	})
}
