package service

import (
	"context"

	"github.com/yatube-dev/yatube/shared/domain"
	"github.com/yatube-dev/yatube/shared/errors"
	"github.com/yatube-dev/yatube/shared/jwt"
	"github.com/yatube-dev/yatube/shared/logger"
	"github.com/yatube-dev/yatube/shared/utils"
)

type AuthService interface {
	Signup(ctx context.Context, creds domain.Credentials) (*domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
}

type Auth struct {
	storage   AuthStorage
	validator CredentialsValidator
	jwt       jwt.JwtService
}

type AuthStorage interface {
	CreateUser(ctx context.Context, username domain.Username, passHash string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username domain.Username) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type CredentialsValidator interface {
	Username(username string) error
	Password(password string) error
}

func NewAuth(storage AuthStorage, validator CredentialsValidator, jwt jwt.JwtService) AuthService {
	return &Auth{storage, validator, jwt}
}

// Signup fails with Conflict when the username is taken.
func (a *Auth) Signup(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if err := a.validator.Username(creds.Username); err != nil {
		return nil, err
	}
	if err := a.validator.Password(creds.Password); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(creds.Password)
	if err != nil {
		logger.Log.Error("hashing password", "error", err)
		return nil, err
	}
	user, err := a.storage.CreateUser(ctx, creds.Username, hash)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("user signed up", "user_id", user.Id, "username", user.Username)
	return user, nil
}

// Login never tells apart an unknown user and a wrong password.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", nil, errors.Unauthorized("Invalid credentials")
		}
		return "", nil, err
	}
	if !utils.CheckPassword(user.PassHash, creds.Password) {
		return "", nil, errors.Unauthorized("Invalid credentials")
	}

	token, err := a.jwt.NewToken(*user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (a *Auth) Users(ctx context.Context) ([]domain.User, error) {
	return a.storage.ListUsers(ctx)
}
