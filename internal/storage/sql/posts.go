package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/yatube-dev/yatube/shared/domain"
	internal_errors "github.com/yatube-dev/yatube/shared/errors"
)

const selectPosts = `
SELECT p.id, p.text, p.created_at,
       u.id AS author_id, u.username AS author_username, u.created_at AS author_created_at,
       g.id AS group_id, g.title AS group_title, g.slug AS group_slug, g.description AS group_description
FROM posts p
JOIN users u ON u.id = p.author_id
LEFT JOIN post_groups g ON g.id = p.group_id`

const newestFirst = " ORDER BY p.created_at DESC, p.id DESC"

type postRow struct {
	Id               domain.PostId  `db:"id"`
	Text             string         `db:"text"`
	CreatedAt        time.Time      `db:"created_at"`
	AuthorId         domain.UserId  `db:"author_id"`
	AuthorUsername   string         `db:"author_username"`
	AuthorCreatedAt  time.Time      `db:"author_created_at"`
	GroupId          sql.NullInt64  `db:"group_id"`
	GroupTitle       sql.NullString `db:"group_title"`
	GroupSlug        sql.NullString `db:"group_slug"`
	GroupDescription sql.NullString `db:"group_description"`
}

func (r postRow) toDomain() domain.Post {
	post := domain.Post{
		Id:   r.Id,
		Text: r.Text,
		Author: domain.User{
			Id:        r.AuthorId,
			Username:  r.AuthorUsername,
			CreatedAt: r.AuthorCreatedAt.UTC(),
		},
		CreatedAt: r.CreatedAt.UTC(),
	}
	if r.GroupId.Valid {
		post.Group = &domain.Group{
			Id:          r.GroupId.Int64,
			Title:       r.GroupTitle.String,
			Slug:        r.GroupSlug.String,
			Description: r.GroupDescription.String,
		}
	}
	return post
}

// =========================================================================
// Public Methods (satisfy service.PostStorage)
// =========================================================================

func (s *Store) CreatePost(ctx context.Context, data domain.PostCreationData) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var post *domain.Post
	err := WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		post, err = s.createPost(ctx, tx, data)
		return err
	})
	return post, err
}

func (s *Store) GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	return s.getPost(ctx, s.db, id)
}

func (s *Store) UpdatePost(ctx context.Context, data domain.PostUpdateData) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var post *domain.Post
	err := WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		post, err = s.updatePost(ctx, tx, data)
		return err
	})
	return post, err
}

func (s *Store) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.listPosts(ctx, s.db, selectPosts+newestFirst)
}

func (s *Store) ListPostsByGroup(ctx context.Context, slug domain.GroupSlug) ([]domain.Post, error) {
	return s.listPosts(ctx, s.db, selectPosts+" WHERE g.slug = ?"+newestFirst, slug)
}

func (s *Store) ListPostsByAuthor(ctx context.Context, username domain.Username) ([]domain.Post, error) {
	return s.listPosts(ctx, s.db, selectPosts+" WHERE u.username = ?"+newestFirst, username)
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Store) createPost(ctx context.Context, q Querier, data domain.PostCreationData) (*domain.Post, error) {
	ok, err := userExists(ctx, q, data.AuthorId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, internal_errors.NotFound("Author not found")
	}
	if err := checkGroup(ctx, q, data.GroupId); err != nil {
		return nil, err
	}

	var id domain.PostId
	err = q.QueryRowxContext(ctx,
		q.Rebind("INSERT INTO posts (text, author_id, group_id, created_at) VALUES (?, ?, ?, ?) RETURNING id"),
		data.Text, data.AuthorId, data.GroupId, s.timestamp()).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	return s.getPost(ctx, q, id)
}

func (s *Store) updatePost(ctx context.Context, q Querier, data domain.PostUpdateData) (*domain.Post, error) {
	if err := checkGroup(ctx, q, data.GroupId); err != nil {
		// an unknown post wins over an unknown group
		if _, getErr := s.getPost(ctx, q, data.Id); getErr != nil {
			return nil, getErr
		}
		return nil, err
	}

	res, err := q.ExecContext(ctx,
		q.Rebind("UPDATE posts SET text = ?, group_id = ? WHERE id = ?"),
		data.Text, data.GroupId, data.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, internal_errors.NotFound("Post not found")
	}
	return s.getPost(ctx, q, data.Id)
}

func (s *Store) getPost(ctx context.Context, q Querier, id domain.PostId) (*domain.Post, error) {
	var row postRow
	if err := q.GetContext(ctx, &row, q.Rebind(selectPosts+" WHERE p.id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Post not found")
		}
		return nil, fmt.Errorf("failed to query post: %w", err)
	}
	post := row.toDomain()
	return &post, nil
}

func (s *Store) listPosts(ctx context.Context, q Querier, query string, args ...any) ([]domain.Post, error) {
	var rows []postRow
	if err := q.SelectContext(ctx, &rows, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	posts := make([]domain.Post, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, r.toDomain())
	}
	return posts, nil
}
