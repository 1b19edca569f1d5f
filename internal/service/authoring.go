package service

import (
	"context"

	"github.com/yatube-dev/yatube/shared/domain"
	"github.com/yatube-dev/yatube/shared/errors"
	"github.com/yatube-dev/yatube/shared/logger"
)

// Authoring applies create and edit requests on behalf of an acting user.
// A nil actor is an anonymous visitor. Rejected calls never reach storage.
type Authoring struct {
	posts PostService
}

func NewAuthoring(posts PostService) *Authoring {
	return &Authoring{posts: posts}
}

func (a *Authoring) SubmitCreate(ctx context.Context, actor *domain.User, text domain.PostText, groupId *domain.GroupId) (*domain.Post, error) {
	if actor == nil {
		authoringRejections.WithLabelValues("create", "unauthorized").Inc()
		return nil, errors.Unauthorized("Please sign in to publish posts")
	}

	post, err := a.posts.Create(ctx, domain.PostCreationData{Text: text, AuthorId: actor.Id, GroupId: groupId})
	if err != nil {
		return nil, err
	}
	postsCreated.Inc()
	logger.Log.Info("post created", "post_id", post.Id, "author", actor.Username)
	return post, nil
}

// SubmitEdit replaces text and group together. Only the author may edit.
func (a *Authoring) SubmitEdit(ctx context.Context, actor *domain.User, postId domain.PostId, text domain.PostText, groupId *domain.GroupId) (*domain.Post, error) {
	if _, err := a.Editable(ctx, actor, postId); err != nil {
		return nil, err
	}

	post, err := a.posts.Update(ctx, domain.PostUpdateData{Id: postId, Text: text, GroupId: groupId})
	if err != nil {
		return nil, err
	}
	postsEdited.Inc()
	logger.Log.Info("post edited", "post_id", post.Id, "author", actor.Username)
	return post, nil
}

// Editable returns the post if actor may edit it.
func (a *Authoring) Editable(ctx context.Context, actor *domain.User, postId domain.PostId) (*domain.Post, error) {
	post, err := a.posts.Get(ctx, postId)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		authoringRejections.WithLabelValues("edit", "unauthorized").Inc()
		return nil, errors.Unauthorized("Please sign in to edit posts")
	}
	if !post.IsAuthoredBy(actor) {
		authoringRejections.WithLabelValues("edit", "forbidden").Inc()
		return nil, errors.Forbidden("Only the author can edit this post")
	}
	return post, nil
}
