package service

import (
	"context"
	"errors"
	"testing"

	"github.com/yatube-dev/yatube/shared/domain"
	internal_errors "github.com/yatube-dev/yatube/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockGroupStorage mocks the GroupStorage interface.
type MockGroupStorage struct {
	createGroupFunc    func(data domain.GroupCreationData) (*domain.Group, error)
	getGroupBySlugFunc func(slug domain.GroupSlug) (*domain.Group, error)
	listGroupsFunc     func() ([]domain.Group, error)
}

func (m *MockGroupStorage) CreateGroup(ctx context.Context, data domain.GroupCreationData) (*domain.Group, error) {
	if m.createGroupFunc != nil {
		return m.createGroupFunc(data)
	}
	return &domain.Group{Id: 1, Title: data.Title, Slug: data.Slug, Description: data.Description}, nil
}

func (m *MockGroupStorage) GetGroupBySlug(ctx context.Context, slug domain.GroupSlug) (*domain.Group, error) {
	if m.getGroupBySlugFunc != nil {
		return m.getGroupBySlugFunc(slug)
	}
	return nil, nil
}

func (m *MockGroupStorage) ListGroups(ctx context.Context) ([]domain.Group, error) {
	if m.listGroupsFunc != nil {
		return m.listGroupsFunc()
	}
	return nil, nil
}

// MockGroupValidator mocks the GroupValidator interface.
type MockGroupValidator struct {
	titleFunc func(title string) error
	slugFunc  func(slug string) error
}

func (m *MockGroupValidator) Title(title string) error {
	if m.titleFunc != nil {
		return m.titleFunc(title)
	}
	return nil
}

func (m *MockGroupValidator) Slug(slug string) error {
	if m.slugFunc != nil {
		return m.slugFunc(slug)
	}
	return nil
}

func TestGroupCreate(t *testing.T) {
	testCases := []struct {
		name         string
		input        domain.GroupCreationData
		titleErr     error
		slugErr      error
		storageErr   error
		expectErr    error
		expectStored bool
	}{
		{
			name:         "Successful Creation",
			input:        domain.GroupCreationData{Title: "Тестовая группа", Slug: "test-slug", Description: "Тестовое описание"},
			expectStored: true,
		},
		{
			name:      "Invalid Title",
			input:     domain.GroupCreationData{Title: "", Slug: "test-slug"},
			titleErr:  internal_errors.Validation("title: this field is required"),
			expectErr: internal_errors.ErrValidation,
		},
		{
			name:      "Invalid Slug",
			input:     domain.GroupCreationData{Title: "t", Slug: "bad slug"},
			slugErr:   internal_errors.Validation("slug: invalid"),
			expectErr: internal_errors.ErrValidation,
		},
		{
			name:         "Duplicate Slug",
			input:        domain.GroupCreationData{Title: "t", Slug: "test-slug"},
			storageErr:   internal_errors.DuplicateSlug("Group with this slug already exists"),
			expectErr:    internal_errors.ErrDuplicateSlug,
			expectStored: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stored := false
			storage := &MockGroupStorage{
				createGroupFunc: func(data domain.GroupCreationData) (*domain.Group, error) {
					stored = true
					if tc.storageErr != nil {
						return nil, tc.storageErr
					}
					return &domain.Group{Id: 1, Title: data.Title, Slug: data.Slug, Description: data.Description}, nil
				},
			}
			validator := &MockGroupValidator{
				titleFunc: func(string) error { return tc.titleErr },
				slugFunc:  func(string) error { return tc.slugErr },
			}

			group, err := NewGroup(storage, validator).Create(context.Background(), tc.input)

			assert.Equal(t, tc.expectStored, stored)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				assert.Nil(t, group)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.input.Slug, group.Slug)
			assert.Equal(t, tc.input.Description, group.Description)
		})
	}
}

func TestGroupGetBySlug(t *testing.T) {
	storage := &MockGroupStorage{
		getGroupBySlugFunc: func(slug domain.GroupSlug) (*domain.Group, error) {
			if slug == "missing" {
				return nil, internal_errors.NotFound("Group not found")
			}
			return &domain.Group{Slug: slug}, nil
		},
	}
	s := NewGroup(storage, &MockGroupValidator{})

	group, err := s.GetBySlug(context.Background(), "cats")
	require.NoError(t, err)
	assert.Equal(t, "cats", group.Slug)

	_, err = s.GetBySlug(context.Background(), "missing")
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestGroupGetAll(t *testing.T) {
	want := []domain.Group{{Slug: "a"}, {Slug: "b"}}
	s := NewGroup(&MockGroupStorage{listGroupsFunc: func() ([]domain.Group, error) { return want, nil }}, &MockGroupValidator{})

	got, err := s.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	s = NewGroup(&MockGroupStorage{listGroupsFunc: func() ([]domain.Group, error) { return nil, errors.New("db down") }}, &MockGroupValidator{})
	_, err = s.GetAll(context.Background())
	assert.Error(t, err)
}
