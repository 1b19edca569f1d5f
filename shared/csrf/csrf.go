// Package csrf implements double-submit tokens: the same random value is
// sent as a cookie and echoed back in every form.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
)

const (
	TokenLength = 32 // bytes
	CookieName  = "csrf_token"
	FormField   = "csrfmiddlewaretoken"
)

func GenerateToken() (string, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateToken reports whether the cookie and form values are present and equal.
func ValidateToken(cookieToken, formToken string) bool {
	if cookieToken == "" || formToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) == 1
}
