package service

import (
	"context"

	"github.com/yatube-dev/yatube/shared/domain"
)

type UserLookup interface {
	GetUserByUsername(ctx context.Context, username domain.Username) (*domain.User, error)
}

// Listing builds the paginated index, group and profile views.
type Listing struct {
	posts    PostService
	groups   GroupService
	users    UserLookup
	pageSize int
}

func NewListing(posts PostService, groups GroupService, users UserLookup, pageSize int) *Listing {
	return &Listing{posts: posts, groups: groups, users: users, pageSize: max(1, pageSize)}
}

func (l *Listing) PageSize() int { return l.pageSize }

func (l *Listing) Index(ctx context.Context, page int) (*domain.Page, error) {
	posts, err := l.posts.All(ctx)
	if err != nil {
		return nil, err
	}
	p := Paginate(posts, l.pageSize, page)
	return &p, nil
}

func (l *Listing) Group(ctx context.Context, slug domain.GroupSlug, page int) (*domain.GroupPage, error) {
	group, err := l.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	posts, err := l.posts.ByGroup(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &domain.GroupPage{Group: *group, Page: Paginate(posts, l.pageSize, page)}, nil
}

func (l *Listing) Profile(ctx context.Context, username domain.Username, page int) (*domain.ProfilePage, error) {
	author, err := l.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	posts, count, err := l.posts.ByAuthor(ctx, username)
	if err != nil {
		return nil, err
	}
	return &domain.ProfilePage{Author: *author, Page: Paginate(posts, l.pageSize, page), PostCount: count}, nil
}

// AuthorPostCount is shown next to a single post.
func (l *Listing) AuthorPostCount(ctx context.Context, username domain.Username) (int, error) {
	_, count, err := l.posts.ByAuthor(ctx, username)
	return count, err
}

// Paginate slices posts without reordering them. Page numbers below 1 mean
// page 1. A page past the end is empty but keeps the totals.
func Paginate(posts []domain.Post, pageSize, page int) domain.Page {
	pageSize = max(1, pageSize)
	page = max(1, page)

	total := len(posts)
	numPages := max(1, (total+pageSize-1)/pageSize)

	start := total
	if page <= numPages {
		start = (page - 1) * pageSize
	}
	end := min(start+pageSize, total)

	return domain.Page{
		Posts:       posts[start:end:end],
		Number:      page,
		NumPages:    numPages,
		TotalCount:  total,
		HasNext:     page < numPages,
		HasPrevious: page > 1,
	}
}
