package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/yatube-dev/yatube/shared/domain"
	jwt_internal "github.com/yatube-dev/yatube/shared/jwt"
	"github.com/yatube-dev/yatube/shared/utils"
)

const AccessTokenCookie = "accessToken"

// Key to store the acting user in the request context
type key int

const UserClaimsKey key = 0

var errNoToken = errors.New("no token")

type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth rejects requests without a valid token with 401.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				if errors.Is(err, errNoToken) {
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
					return
				}
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// OptionalAuth populates the user if the token is valid and never rejects.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, err := a.extractUser(r); err == nil {
				r = r.WithContext(WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractUser reads the token from the cookie (browsers) or the Authorization header (API clients).
func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	var tokenString string
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		tokenString = c.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}
	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}
	return jwt_internal.UserFromToken(token)
}

func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserClaimsKey, user)
}

// GetUserFromContext returns nil for anonymous requests.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
