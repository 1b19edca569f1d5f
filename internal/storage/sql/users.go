package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/yatube-dev/yatube/shared/domain"
	internal_errors "github.com/yatube-dev/yatube/shared/errors"
)

// =========================================================================
// Public Methods (satisfy service.AuthStorage)
// =========================================================================

func (s *Store) CreateUser(ctx context.Context, username domain.Username, passHash string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user *domain.User
	err := WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		user, err = s.createUser(ctx, tx, username, passHash)
		return err
	})
	return user, err
}

func (s *Store) GetUserByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	return s.userByUsername(ctx, s.db, username)
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := s.db.SelectContext(ctx, &users,
		"SELECT id, username, pass_hash, created_at FROM users ORDER BY username")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].CreatedAt = users[i].CreatedAt.UTC()
	}
	return users, nil
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Store) createUser(ctx context.Context, q Querier, username domain.Username, passHash string) (*domain.User, error) {
	user := domain.User{Username: username, PassHash: passHash, CreatedAt: s.timestamp()}
	err := q.QueryRowxContext(ctx,
		q.Rebind("INSERT INTO users (username, pass_hash, created_at) VALUES (?, ?, ?) RETURNING id"),
		user.Username, user.PassHash, user.CreatedAt).Scan(&user.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, internal_errors.Conflict("A user with that username already exists")
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return &user, nil
}

func (s *Store) userByUsername(ctx context.Context, q Querier, username domain.Username) (*domain.User, error) {
	var user domain.User
	err := q.GetContext(ctx, &user,
		q.Rebind("SELECT id, username, pass_hash, created_at FROM users WHERE username = ?"), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

func userExists(ctx context.Context, q Querier, id domain.UserId) (bool, error) {
	var n int
	err := q.GetContext(ctx, &n, q.Rebind("SELECT COUNT(*) FROM users WHERE id = ?"), id)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return n > 0, nil
}
