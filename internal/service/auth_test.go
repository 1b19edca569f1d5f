package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube-dev/yatube/shared/domain"
	internal_errors "github.com/yatube-dev/yatube/shared/errors"
	"github.com/yatube-dev/yatube/shared/jwt"
	"github.com/yatube-dev/yatube/shared/utils"
)

// MockAuthStorage mocks the AuthStorage interface.
type MockAuthStorage struct {
	createUserFunc        func(username domain.Username, passHash string) (*domain.User, error)
	getUserByUsernameFunc func(username domain.Username) (*domain.User, error)
	listUsersFunc         func() ([]domain.User, error)
}

func (m *MockAuthStorage) CreateUser(ctx context.Context, username domain.Username, passHash string) (*domain.User, error) {
	if m.createUserFunc != nil {
		return m.createUserFunc(username, passHash)
	}
	return &domain.User{Id: 1, Username: username, PassHash: passHash}, nil
}

func (m *MockAuthStorage) GetUserByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	if m.getUserByUsernameFunc != nil {
		return m.getUserByUsernameFunc(username)
	}
	return nil, internal_errors.NotFound("User not found")
}

func (m *MockAuthStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	if m.listUsersFunc != nil {
		return m.listUsersFunc()
	}
	return nil, nil
}

// MockCredentialsValidator mocks the CredentialsValidator interface.
type MockCredentialsValidator struct {
	usernameFunc func(username string) error
	passwordFunc func(password string) error
}

func (m *MockCredentialsValidator) Username(username string) error {
	if m.usernameFunc != nil {
		return m.usernameFunc(username)
	}
	return nil
}

func (m *MockCredentialsValidator) Password(password string) error {
	if m.passwordFunc != nil {
		return m.passwordFunc(password)
	}
	return nil
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	creds := domain.Credentials{Username: "leo", Password: "correct horse"}

	t.Run("stores a bcrypt hash", func(t *testing.T) {
		var storedHash string
		storage := &MockAuthStorage{createUserFunc: func(username domain.Username, passHash string) (*domain.User, error) {
			storedHash = passHash
			return &domain.User{Id: 7, Username: username, PassHash: passHash}, nil
		}}

		user, err := NewAuth(storage, &MockCredentialsValidator{}, jwt.New("secret", time.Hour)).Signup(ctx, creds)
		require.NoError(t, err)
		assert.Equal(t, domain.UserId(7), user.Id)
		assert.NotEqual(t, creds.Password, storedHash)
		assert.True(t, utils.CheckPassword(storedHash, creds.Password))
	})

	t.Run("invalid username", func(t *testing.T) {
		storage := &MockAuthStorage{createUserFunc: func(domain.Username, string) (*domain.User, error) {
			t.Fatal("storage must not be called")
			return nil, nil
		}}
		validator := &MockCredentialsValidator{usernameFunc: func(string) error {
			return internal_errors.Validation("username: enter a valid username")
		}}

		_, err := NewAuth(storage, validator, jwt.New("secret", time.Hour)).Signup(ctx, creds)
		assert.True(t, internal_errors.IsValidation(err))
	})

	t.Run("short password", func(t *testing.T) {
		validator := &MockCredentialsValidator{passwordFunc: func(string) error {
			return internal_errors.Validation("password: too short")
		}}

		_, err := NewAuth(&MockAuthStorage{}, validator, jwt.New("secret", time.Hour)).Signup(ctx, creds)
		assert.True(t, internal_errors.IsValidation(err))
	})

	t.Run("username taken", func(t *testing.T) {
		storage := &MockAuthStorage{createUserFunc: func(domain.Username, string) (*domain.User, error) {
			return nil, internal_errors.Conflict("A user with that username already exists")
		}}

		_, err := NewAuth(storage, &MockCredentialsValidator{}, jwt.New("secret", time.Hour)).Signup(ctx, creds)
		assert.ErrorIs(t, err, internal_errors.ErrConflict)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct horse")
	require.NoError(t, err)

	storage := &MockAuthStorage{getUserByUsernameFunc: func(username domain.Username) (*domain.User, error) {
		if username == "leo" {
			return &domain.User{Id: 3, Username: "leo", PassHash: hash}, nil
		}
		if username == "broken" {
			return nil, errors.New("connection reset")
		}
		return nil, internal_errors.NotFound("User not found")
	}}
	jwtService := jwt.New("secret", time.Hour)
	s := NewAuth(storage, &MockCredentialsValidator{}, jwtService)

	t.Run("valid credentials issue a token for the user", func(t *testing.T) {
		token, user, err := s.Login(ctx, domain.Credentials{Username: "leo", Password: "correct horse"})
		require.NoError(t, err)
		assert.Equal(t, domain.UserId(3), user.Id)

		decoded, err := jwtService.DecodeToken(token)
		require.NoError(t, err)
		claimed, err := jwt.UserFromToken(decoded)
		require.NoError(t, err)
		assert.Equal(t, domain.UserId(3), claimed.Id)
		assert.Equal(t, "leo", claimed.Username)
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		_, _, wrongPass := s.Login(ctx, domain.Credentials{Username: "leo", Password: "nope"})
		_, _, unknown := s.Login(ctx, domain.Credentials{Username: "ghost", Password: "correct horse"})

		assert.True(t, internal_errors.IsUnauthorized(wrongPass))
		assert.True(t, internal_errors.IsUnauthorized(unknown))
		assert.Equal(t, wrongPass.Error(), unknown.Error())
	})

	t.Run("storage failure is not masked", func(t *testing.T) {
		_, _, err := s.Login(ctx, domain.Credentials{Username: "broken", Password: "x"})
		assert.EqualError(t, err, "connection reset")
	})
}

func TestUsers(t *testing.T) {
	storage := &MockAuthStorage{listUsersFunc: func() ([]domain.User, error) {
		return []domain.User{{Id: 1, Username: "anna"}, {Id: 2, Username: "leo"}}, nil
	}}

	users, err := NewAuth(storage, &MockCredentialsValidator{}, jwt.New("secret", time.Hour)).Users(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
