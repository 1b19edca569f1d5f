// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube-dev/yatube/internal/service"
	"github.com/yatube-dev/yatube/shared/domain"
	"github.com/yatube-dev/yatube/shared/errors"
)

type Store interface {
	service.GroupStorage
	service.PostStorage
	service.AuthStorage
}

// Factory returns an empty store whose creation timestamps come from now.
type Factory func(t *testing.T, now func() time.Time) Store

// Clock hands out strictly increasing timestamps unless frozen.
type Clock struct {
	mu     sync.Mutex
	t      time.Time
	frozen bool
}

func NewClock() *Clock {
	return &Clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.frozen {
		c.t = c.t.Add(time.Second)
	}
	return c.t
}

func (c *Clock) Freeze() {
	c.mu.Lock()
	c.frozen = true
	c.mu.Unlock()
}

func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore) })
	t.Run("Groups", func(t *testing.T) { testGroups(t, newStore) })
	t.Run("CreateAndGetPost", func(t *testing.T) { testCreateAndGetPost(t, newStore) })
	t.Run("UpdatePost", func(t *testing.T) { testUpdatePost(t, newStore) })
	t.Run("Ordering", func(t *testing.T) { testOrdering(t, newStore) })
	t.Run("Filters", func(t *testing.T) { testFilters(t, newStore) })
}

func mustUser(t *testing.T, s Store, name string) *domain.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), name, "hash-"+name)
	require.NoError(t, err)
	return u
}

func mustGroup(t *testing.T, s Store, slug string) *domain.Group {
	t.Helper()
	g, err := s.CreateGroup(context.Background(), domain.GroupCreationData{Title: "Group " + slug, Slug: slug, Description: "about " + slug})
	require.NoError(t, err)
	return g
}

func mustPost(t *testing.T, s Store, text string, author *domain.User, group *domain.Group) *domain.Post {
	t.Helper()
	data := domain.PostCreationData{Text: text, AuthorId: author.Id}
	if group != nil {
		data.GroupId = &group.Id
	}
	p, err := s.CreatePost(context.Background(), data)
	require.NoError(t, err)
	return p
}

func texts(posts []domain.Post) []string {
	return lo.Map(posts, func(p domain.Post, _ int) string { return p.Text })
}

func testUsers(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t, NewClock().Now)

	leo := mustUser(t, s, "leo")
	assert.NotZero(t, leo.Id)
	assert.Equal(t, "hash-leo", leo.PassHash)

	_, err := s.CreateUser(ctx, "leo", "other")
	assert.ErrorIs(t, err, errors.ErrConflict)

	got, err := s.GetUserByUsername(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, leo.Id, got.Id)
	assert.Equal(t, "hash-leo", got.PassHash)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.True(t, errors.IsNotFound(err))

	mustUser(t, s, "anna")
	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"anna", "leo"}, lo.Map(users, func(u domain.User, _ int) string { return u.Username }))
}

func testGroups(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t, NewClock().Now)

	g := mustGroup(t, s, "test-slug")
	assert.NotZero(t, g.Id)
	assert.Equal(t, "Group test-slug", g.Title)

	_, err := s.CreateGroup(ctx, domain.GroupCreationData{Title: "Other", Slug: "test-slug"})
	assert.ErrorIs(t, err, errors.ErrDuplicateSlug)

	got, err := s.GetGroupBySlug(ctx, "test-slug")
	require.NoError(t, err)
	assert.Equal(t, *g, *got)

	_, err = s.GetGroupBySlug(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))

	_, err = s.CreateGroup(ctx, domain.GroupCreationData{Title: "A first", Slug: "a"})
	require.NoError(t, err)
	groups, err := s.ListGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "test-slug"}, lo.Map(groups, func(g domain.Group, _ int) string { return g.Slug }))
}

func testCreateAndGetPost(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t, NewClock().Now)
	auth := mustUser(t, s, "auth")
	group := mustGroup(t, s, "test-slug")

	grouped := mustPost(t, s, "Тестовый текст", auth, group)
	assert.Equal(t, auth.Id, grouped.Author.Id)
	assert.Equal(t, "auth", grouped.Author.Username)
	require.NotNil(t, grouped.Group)
	assert.Equal(t, "test-slug", grouped.Group.Slug)
	assert.False(t, grouped.CreatedAt.IsZero())

	plain := mustPost(t, s, "no group", auth, nil)
	assert.Nil(t, plain.Group)

	got, err := s.GetPost(ctx, grouped.Id)
	require.NoError(t, err)
	assert.Equal(t, "Тестовый текст", got.Text)
	assert.Equal(t, "auth", got.Author.Username)
	assert.Empty(t, got.Author.PassHash)
	require.NotNil(t, got.Group)
	assert.Equal(t, group.Id, got.Group.Id)
	assert.True(t, grouped.CreatedAt.Equal(got.CreatedAt))

	_, err = s.GetPost(ctx, 9999)
	assert.True(t, errors.IsNotFound(err))

	missing := domain.GroupId(9999)
	_, err = s.CreatePost(ctx, domain.PostCreationData{Text: "x", AuthorId: auth.Id, GroupId: &missing})
	assert.True(t, errors.IsNotFound(err))

	all, err := s.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "failed create must not leave a post behind")
}

func testUpdatePost(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t, NewClock().Now)
	auth := mustUser(t, s, "auth")
	group := mustGroup(t, s, "test-slug")
	other := mustGroup(t, s, "other")

	target := mustPost(t, s, "old", auth, group)
	bystander := mustPost(t, s, "bystander", auth, group)

	updated, err := s.UpdatePost(ctx, domain.PostUpdateData{Id: target.Id, Text: "new", GroupId: &other.Id})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Text)
	require.NotNil(t, updated.Group)
	assert.Equal(t, "other", updated.Group.Slug)
	assert.Equal(t, auth.Id, updated.Author.Id, "author is immutable")
	assert.True(t, target.CreatedAt.Equal(updated.CreatedAt), "creation time is immutable")

	detached, err := s.UpdatePost(ctx, domain.PostUpdateData{Id: target.Id, Text: "new"})
	require.NoError(t, err)
	assert.Nil(t, detached.Group)

	untouched, err := s.GetPost(ctx, bystander.Id)
	require.NoError(t, err)
	assert.Equal(t, "bystander", untouched.Text)
	assert.Equal(t, group.Id, untouched.Group.Id)

	_, err = s.UpdatePost(ctx, domain.PostUpdateData{Id: 9999, Text: "x"})
	assert.True(t, errors.IsNotFound(err))

	missing := domain.GroupId(9999)
	_, err = s.UpdatePost(ctx, domain.PostUpdateData{Id: target.Id, Text: "lost", GroupId: &missing})
	assert.True(t, errors.IsNotFound(err))
	still, err := s.GetPost(ctx, target.Id)
	require.NoError(t, err)
	assert.Equal(t, "new", still.Text, "failed update must not change the post")
}

func testOrdering(t *testing.T, newStore Factory) {
	ctx := context.Background()
	clock := NewClock()
	s := newStore(t, clock.Now)
	auth := mustUser(t, s, "auth")

	for _, text := range []string{"first", "second", "third"} {
		mustPost(t, s, text, auth, nil)
	}
	clock.Freeze()
	mustPost(t, s, "tie-a", auth, nil)
	mustPost(t, s, "tie-b", auth, nil)

	all, err := s.ListPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tie-b", "tie-a", "third", "second", "first"}, texts(all))
}

func testFilters(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t, NewClock().Now)
	auth := mustUser(t, s, "auth")
	other := mustUser(t, s, "other")
	group := mustGroup(t, s, "test-slug")
	mustGroup(t, s, "empty")

	mustPost(t, s, "t1", auth, nil)
	mustPost(t, s, "t2", auth, group)
	mustPost(t, s, "t3", other, group)

	byGroup, err := s.ListPostsByGroup(ctx, "test-slug")
	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t2"}, texts(byGroup))

	empty, err := s.ListPostsByGroup(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, empty)

	unknown, err := s.ListPostsByGroup(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, unknown)

	byAuthor, err := s.ListPostsByAuthor(ctx, "auth")
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t1"}, texts(byAuthor))

	none, err := s.ListPostsByAuthor(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}
