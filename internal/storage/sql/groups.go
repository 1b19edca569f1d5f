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
// Public Methods (satisfy service.GroupStorage)
// =========================================================================

func (s *Store) CreateGroup(ctx context.Context, data domain.GroupCreationData) (*domain.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var group *domain.Group
	err := WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		group, err = s.createGroup(ctx, tx, data)
		return err
	})
	return group, err
}

func (s *Store) GetGroupBySlug(ctx context.Context, slug domain.GroupSlug) (*domain.Group, error) {
	var group domain.Group
	err := s.db.GetContext(ctx, &group,
		s.db.Rebind("SELECT id, title, slug, description FROM post_groups WHERE slug = ?"), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Group not found")
		}
		return nil, fmt.Errorf("failed to query group: %w", err)
	}
	return &group, nil
}

func (s *Store) ListGroups(ctx context.Context) ([]domain.Group, error) {
	groups := []domain.Group{}
	err := s.db.SelectContext(ctx, &groups,
		"SELECT id, title, slug, description FROM post_groups ORDER BY title, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Store) createGroup(ctx context.Context, q Querier, data domain.GroupCreationData) (*domain.Group, error) {
	group := domain.Group{Title: data.Title, Slug: data.Slug, Description: data.Description}
	err := q.QueryRowxContext(ctx,
		q.Rebind("INSERT INTO post_groups (title, slug, description) VALUES (?, ?, ?) RETURNING id"),
		group.Title, group.Slug, group.Description).Scan(&group.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, internal_errors.DuplicateSlug("Group with this slug already exists")
		}
		return nil, fmt.Errorf("failed to insert group: %w", err)
	}
	return &group, nil
}

// checkGroup accepts a nil id, which means "no group".
func checkGroup(ctx context.Context, q Querier, id *domain.GroupId) error {
	if id == nil {
		return nil
	}
	var n int
	if err := q.GetContext(ctx, &n, q.Rebind("SELECT COUNT(*) FROM post_groups WHERE id = ?"), *id); err != nil {
		return fmt.Errorf("failed to check group: %w", err)
	}
	if n == 0 {
		return internal_errors.NotFound("Group not found")
	}
	return nil
}
