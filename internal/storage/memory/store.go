// Package memory is an in-process store with the same semantics as the SQL
// store. It backs the "memory" driver and the handler tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/yatube-dev/yatube/shared/domain"
	"github.com/yatube-dev/yatube/shared/errors"
)

type postRecord struct {
	id        domain.PostId
	text      domain.PostText
	authorId  domain.UserId
	groupId   *domain.GroupId
	createdAt time.Time
}

type Store struct {
	mu sync.RWMutex

	users  map[domain.UserId]domain.User
	groups map[domain.GroupId]domain.Group
	posts  map[domain.PostId]postRecord

	lastUserId  domain.UserId
	lastGroupId domain.GroupId
	lastPostId  domain.PostId

	now func() time.Time
}

func New() *Store {
	return &Store{
		users:  make(map[domain.UserId]domain.User),
		groups: make(map[domain.GroupId]domain.Group),
		posts:  make(map[domain.PostId]postRecord),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the creation timestamp source.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close() error                   { return nil }

// ============================================
// Users
// ============================================

func (s *Store) CreateUser(ctx context.Context, username domain.Username, passHash string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.userByUsername(username); taken {
		return nil, errors.Conflict("A user with that username already exists")
	}
	s.lastUserId++
	user := domain.User{Id: s.lastUserId, Username: username, PassHash: passHash, CreatedAt: s.now()}
	s.users[user.Id] = user
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username domain.Username) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.userByUsername(username)
	if !ok {
		return nil, errors.NotFound("User not found")
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := lo.Values(s.users)
	slices.SortFunc(users, func(a, b domain.User) int { return cmp.Compare(a.Username, b.Username) })
	return users, nil
}

func (s *Store) userByUsername(username domain.Username) (domain.User, bool) {
	return lo.Find(lo.Values(s.users), func(u domain.User) bool { return u.Username == username })
}

// ============================================
// Groups
// ============================================

func (s *Store) CreateGroup(ctx context.Context, data domain.GroupCreationData) (*domain.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.groupBySlug(data.Slug); taken {
		return nil, errors.DuplicateSlug("Group with this slug already exists")
	}
	s.lastGroupId++
	group := domain.Group{Id: s.lastGroupId, Title: data.Title, Slug: data.Slug, Description: data.Description}
	s.groups[group.Id] = group
	return &group, nil
}

func (s *Store) GetGroupBySlug(ctx context.Context, slug domain.GroupSlug) (*domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groupBySlug(slug)
	if !ok {
		return nil, errors.NotFound("Group not found")
	}
	return &group, nil
}

func (s *Store) ListGroups(ctx context.Context) ([]domain.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := lo.Values(s.groups)
	slices.SortFunc(groups, func(a, b domain.Group) int {
		return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.Id, b.Id))
	})
	return groups, nil
}

func (s *Store) groupBySlug(slug domain.GroupSlug) (domain.Group, bool) {
	return lo.Find(lo.Values(s.groups), func(g domain.Group) bool { return g.Slug == slug })
}

// ============================================
// Posts
// ============================================

func (s *Store) CreatePost(ctx context.Context, data domain.PostCreationData) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[data.AuthorId]; !ok {
		return nil, errors.NotFound("Author not found")
	}
	if err := s.checkGroup(data.GroupId); err != nil {
		return nil, err
	}

	s.lastPostId++
	rec := postRecord{
		id:        s.lastPostId,
		text:      data.Text,
		authorId:  data.AuthorId,
		groupId:   cloneId(data.GroupId),
		createdAt: s.now(),
	}
	s.posts[rec.id] = rec
	post := s.hydrate(rec)
	return &post, nil
}

func (s *Store) GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.posts[id]
	if !ok {
		return nil, errors.NotFound("Post not found")
	}
	post := s.hydrate(rec)
	return &post, nil
}

func (s *Store) UpdatePost(ctx context.Context, data domain.PostUpdateData) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.posts[data.Id]
	if !ok {
		return nil, errors.NotFound("Post not found")
	}
	if err := s.checkGroup(data.GroupId); err != nil {
		return nil, err
	}
	rec.text = data.Text
	rec.groupId = cloneId(data.GroupId)
	s.posts[rec.id] = rec

	post := s.hydrate(rec)
	return &post, nil
}

func (s *Store) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.listWhere(func(postRecord) bool { return true }), nil
}

func (s *Store) ListPostsByGroup(ctx context.Context, slug domain.GroupSlug) ([]domain.Post, error) {
	s.mu.RLock()
	group, ok := s.groupBySlug(slug)
	s.mu.RUnlock()
	if !ok {
		return []domain.Post{}, nil
	}
	return s.listWhere(func(r postRecord) bool { return r.groupId != nil && *r.groupId == group.Id }), nil
}

func (s *Store) ListPostsByAuthor(ctx context.Context, username domain.Username) ([]domain.Post, error) {
	s.mu.RLock()
	user, ok := s.userByUsername(username)
	s.mu.RUnlock()
	if !ok {
		return []domain.Post{}, nil
	}
	return s.listWhere(func(r postRecord) bool { return r.authorId == user.Id }), nil
}

func (s *Store) listWhere(pred func(postRecord) bool) []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := lo.Filter(lo.Values(s.posts), func(r postRecord, _ int) bool { return pred(r) })
	slices.SortFunc(recs, func(a, b postRecord) int {
		return cmp.Or(b.createdAt.Compare(a.createdAt), cmp.Compare(b.id, a.id))
	})
	return lo.Map(recs, func(r postRecord, _ int) domain.Post { return s.hydrate(r) })
}

func (s *Store) checkGroup(id *domain.GroupId) error {
	if id == nil {
		return nil
	}
	if _, ok := s.groups[*id]; !ok {
		return errors.NotFound("Group not found")
	}
	return nil
}

// hydrate must be called with the lock held.
func (s *Store) hydrate(r postRecord) domain.Post {
	author := s.users[r.authorId]
	author.PassHash = ""
	post := domain.Post{
		Id:        r.id,
		Text:      r.text,
		Author:    author,
		CreatedAt: r.createdAt,
	}
	if r.groupId != nil {
		group := s.groups[*r.groupId]
		post.Group = &group
	}
	return post
}

func cloneId(id *domain.GroupId) *domain.GroupId {
	if id == nil {
		return nil
	}
	return lo.ToPtr(*id)
}
