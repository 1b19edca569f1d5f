package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yatube-dev/yatube/shared/domain"
	internal_errors "github.com/yatube-dev/yatube/shared/errors"
	"github.com/yatube-dev/yatube/shared/logger"
)

type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (*jwt.Token, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":      user.Id,
		"username": user.Username,
		"exp":      time.Now().Add(j.ttl).Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("signing token", "error", err)
		return "", fmt.Errorf("can't create token: %w", err)
	}
	return tokenString, nil
}

func (j *Jwt) DecodeToken(jwtStr string) (*jwt.Token, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		logger.Log.Debug("decoding token", "error", err)
		return nil, internal_errors.Unauthorized("Invalid token signature")
	}
	if !token.Valid {
		return nil, internal_errors.Unauthorized("Invalid access token")
	}
	return token, nil
}

// UserFromToken rebuilds the acting user from the uid and username claims.
func UserFromToken(token *jwt.Token) (*domain.User, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, internal_errors.Unauthorized("Invalid token claims")
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, internal_errors.Unauthorized("Invalid token claims")
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return nil, internal_errors.Unauthorized("Invalid token claims")
	}
	return &domain.User{Id: domain.UserId(uid), Username: username}, nil
}
