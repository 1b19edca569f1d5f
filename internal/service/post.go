//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=../mocks/mock_post.go -package=mocks
package service

import (
	"context"

	"github.com/yatube-dev/yatube/shared/domain"
)

type PostService interface {
	Create(ctx context.Context, data domain.PostCreationData) (*domain.Post, error)
	Get(ctx context.Context, id domain.PostId) (*domain.Post, error)
	Update(ctx context.Context, data domain.PostUpdateData) (*domain.Post, error)
	All(ctx context.Context) ([]domain.Post, error)
	ByGroup(ctx context.Context, slug domain.GroupSlug) ([]domain.Post, error)
	ByAuthor(ctx context.Context, username domain.Username) ([]domain.Post, int, error)
}

type Post struct {
	storage   PostStorage
	validator PostValidator
}

// All list methods return posts newest first, ties broken by id descending.
type PostStorage interface {
	CreatePost(ctx context.Context, data domain.PostCreationData) (*domain.Post, error)
	GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error)
	UpdatePost(ctx context.Context, data domain.PostUpdateData) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	ListPostsByGroup(ctx context.Context, slug domain.GroupSlug) ([]domain.Post, error)
	ListPostsByAuthor(ctx context.Context, username domain.Username) ([]domain.Post, error)
}

type PostValidator interface {
	Text(text string) error
}

func NewPost(storage PostStorage, validator PostValidator) PostService {
	return &Post{storage, validator}
}

func (p *Post) Create(ctx context.Context, data domain.PostCreationData) (*domain.Post, error) {
	if err := p.validator.Text(data.Text); err != nil {
		return nil, err
	}
	return p.storage.CreatePost(ctx, data)
}

func (p *Post) Get(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	return p.storage.GetPost(ctx, id)
}

func (p *Post) Update(ctx context.Context, data domain.PostUpdateData) (*domain.Post, error) {
	if err := p.validator.Text(data.Text); err != nil {
		return nil, err
	}
	return p.storage.UpdatePost(ctx, data)
}

func (p *Post) All(ctx context.Context) ([]domain.Post, error) {
	return p.storage.ListPosts(ctx)
}

func (p *Post) ByGroup(ctx context.Context, slug domain.GroupSlug) ([]domain.Post, error) {
	return p.storage.ListPostsByGroup(ctx, slug)
}

// ByAuthor also returns the author's total post count.
func (p *Post) ByAuthor(ctx context.Context, username domain.Username) ([]domain.Post, int, error) {
	posts, err := p.storage.ListPostsByAuthor(ctx, username)
	if err != nil {
		return nil, 0, err
	}
	return posts, len(posts), nil
}
