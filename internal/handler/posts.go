package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/yatube-dev/yatube/shared/domain"
	"github.com/yatube-dev/yatube/shared/errors"
	mw "github.com/yatube-dev/yatube/shared/middleware"
	"github.com/yatube-dev/yatube/shared/utils"
)

type indexPage struct {
	Page domain.Page
}

type postDetailPage struct {
	Post      *domain.Post
	Profile   domain.User
	PostCount int
	CanEdit   bool
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.listing.Index(r.Context(), utils.ParsePage(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, tmplIndex, indexPage{Page: *page})
}

func (h *Handler) GroupPosts(w http.ResponseWriter, r *http.Request) {
	page, err := h.listing.Group(r.Context(), chi.URLParam(r, "slug"), utils.ParsePage(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, tmplGroupList, page)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	page, err := h.listing.Profile(r.Context(), chi.URLParam(r, "username"), utils.ParsePage(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, tmplProfile, page)
}

func (h *Handler) PostDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostId(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	count, err := h.listing.AuthorPostCount(r.Context(), post.Author.Username)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.renderTemplate(w, r, tmplPostDetail, postDetailPage{
		Post:      post,
		Profile:   post.Author,
		PostCount: count,
		CanEdit:   post.IsAuthoredBy(mw.GetUserFromContext(r)),
	})
}

// parsePostId treats a malformed id like a missing post.
func parsePostId(r *http.Request) (domain.PostId, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.NotFound("Post not found")
	}
	return id, nil
}
