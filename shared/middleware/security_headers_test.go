package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeadersWithCSP(t *testing.T) {
	tests := []struct {
		name     string
		https    bool
		csp      string
		wantHSTS bool
	}{
		{name: "plain http page", https: false, csp: PageCSP},
		{name: "https api", https: true, csp: APICSP, wantHSTS: true},
		{name: "no csp", https: false, csp: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			SecurityHeadersWithCSP(tt.https, tt.csp)(okHandler()).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

			assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
			assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, tt.csp, rr.Header().Get("Content-Security-Policy"))
			assert.Equal(t, tt.wantHSTS, rr.Header().Get("Strict-Transport-Security") != "")
		})
	}
}
