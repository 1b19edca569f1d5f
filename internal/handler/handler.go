package handler

import (
	"context"
	"html/template"

	"github.com/yatube-dev/yatube/internal/service"
	"github.com/yatube-dev/yatube/shared/config"
)

// Pinger reports whether storage can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Templates map[string]*template.Template
	Public    config.Public

	posts     service.PostService
	groups    service.GroupService
	auth      service.AuthService
	listing   *service.Listing
	authoring *service.Authoring
	health    Pinger
}

func New(
	templates map[string]*template.Template,
	public config.Public,
	posts service.PostService,
	groups service.GroupService,
	auth service.AuthService,
	listing *service.Listing,
	authoring *service.Authoring,
	health Pinger,
) *Handler {
	return &Handler{
		Templates: templates,
		Public:    public,
		posts:     posts,
		groups:    groups,
		auth:      auth,
		listing:   listing,
		authoring: authoring,
		health:    health,
	}
}
