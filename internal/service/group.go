package service

import (
	"context"

	"github.com/yatube-dev/yatube/shared/domain"
)

// to mock service in tests
type GroupService interface {
	Create(ctx context.Context, data domain.GroupCreationData) (*domain.Group, error)
	GetBySlug(ctx context.Context, slug domain.GroupSlug) (*domain.Group, error)
	GetAll(ctx context.Context) ([]domain.Group, error)
}

type Group struct {
	storage   GroupStorage
	validator GroupValidator
}

type GroupStorage interface {
	CreateGroup(ctx context.Context, data domain.GroupCreationData) (*domain.Group, error)
	GetGroupBySlug(ctx context.Context, slug domain.GroupSlug) (*domain.Group, error)
	ListGroups(ctx context.Context) ([]domain.Group, error)
}

type GroupValidator interface {
	Title(title string) error
	Slug(slug string) error
}

func NewGroup(storage GroupStorage, validator GroupValidator) GroupService {
	return &Group{storage, validator}
}

// Create fails with DuplicateSlug when the slug is taken.
func (g *Group) Create(ctx context.Context, data domain.GroupCreationData) (*domain.Group, error) {
	if err := g.validator.Title(data.Title); err != nil {
		return nil, err
	}
	if err := g.validator.Slug(data.Slug); err != nil {
		return nil, err
	}
	return g.storage.CreateGroup(ctx, data)
}

func (g *Group) GetBySlug(ctx context.Context, slug domain.GroupSlug) (*domain.Group, error) {
	return g.storage.GetGroupBySlug(ctx, slug)
}

func (g *Group) GetAll(ctx context.Context) ([]domain.Group, error) {
	return g.storage.ListGroups(ctx)
}
