package handler

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	internal_errors "github.com/yatube-dev/yatube/shared/errors"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		ping   error
		status int
	}{
		{"storage up", nil, http.StatusOK},
		{"storage down", errors.New("connection refused"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{health: pingerFunc(func(ctx context.Context) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return tt.ping
			})}
			rec := httptest.NewRecorder()
			h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	t.Run("encodes with status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeJSON(rec, http.StatusCreated, map[string]int{"id": 1})
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"id":1}`, rec.Body.String())
	})

	t.Run("unencodable value is a clean 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeJSON(rec, http.StatusOK, map[string]any{"ch": make(chan int)})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Header().Get("Content-Type"), "application/json")
	})
}

func TestParsePostId(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.raw)
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

			id, err := parsePostId(r)
			if tt.wantErr {
				assert.True(t, internal_errors.IsNotFound(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	h := &Handler{Templates: map[string]*template.Template{}}
	rec := httptest.NewRecorder()
	h.renderTemplate(rec, httptest.NewRequest(http.MethodGet, "/", nil), tmplIndex, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRenderErrorUnauthorizedRedirects(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	h.renderError(rec, httptest.NewRequest(http.MethodGet, "/create/", nil), internal_errors.Unauthorized("sign in"))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/?next=/create/", rec.Header().Get("Location"))
}
