package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/yatube-dev/yatube/shared/domain"
	"github.com/yatube-dev/yatube/shared/errors"
	"github.com/yatube-dev/yatube/shared/logger"
	mw "github.com/yatube-dev/yatube/shared/middleware"
	"github.com/yatube-dev/yatube/shared/utils"
)

// postFormPage backs create_post.html for both creating and editing.
type postFormPage struct {
	Text   string
	Group  string
	Groups []domain.Group
	IsEdit bool
	PostId domain.PostId
}

func (h *Handler) PostCreateGet(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.GetAll(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplate(w, r, tmplCreatePost, postFormPage{Groups: groups})
}

func (h *Handler) PostCreatePost(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	form, groupId, err := h.readPostForm(r)
	if err == nil {
		_, err = h.authoring.SubmitCreate(r.Context(), user, form.Text, groupId)
	}
	if err != nil {
		h.postFormFailed(w, r, form, err)
		return
	}
	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusFound)
}

func (h *Handler) PostEditGet(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostId(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	post, err := h.authoring.Editable(r.Context(), mw.GetUserFromContext(r), id)
	if err != nil {
		h.postFormFailed(w, r, postFormPage{IsEdit: true, PostId: id}, err)
		return
	}
	groups, err := h.groups.GetAll(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	form := postFormPage{Text: post.Text, Groups: groups, IsEdit: true, PostId: post.Id}
	if post.Group != nil {
		form.Group = strconv.FormatInt(post.Group.Id, 10)
	}
	h.renderTemplate(w, r, tmplCreatePost, form)
}

func (h *Handler) PostEditPost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostId(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	// strangers are turned away before their input is looked at
	if _, err := h.authoring.Editable(r.Context(), mw.GetUserFromContext(r), id); err != nil {
		h.postFormFailed(w, r, postFormPage{IsEdit: true, PostId: id}, err)
		return
	}

	form, groupId, err := h.readPostForm(r)
	form.IsEdit, form.PostId = true, id
	if err == nil {
		_, err = h.authoring.SubmitEdit(r.Context(), mw.GetUserFromContext(r), id, form.Text, groupId)
	}
	if err != nil {
		h.postFormFailed(w, r, form, err)
		return
	}
	http.Redirect(w, r, postURL(id), http.StatusFound)
}

// readPostForm returns the submitted values even when they are invalid so
// the form can be shown again with the input preserved.
func (h *Handler) readPostForm(r *http.Request) (postFormPage, *domain.GroupId, error) {
	form := postFormPage{
		Text:  strings.TrimSpace(r.PostFormValue("text")),
		Group: r.PostFormValue("group"),
	}
	groups, err := h.groups.GetAll(r.Context())
	if err != nil {
		return form, nil, err
	}
	form.Groups = groups

	groupId, err := utils.ParseOptionalId(form.Group)
	if err != nil {
		return form, nil, err
	}
	if groupId != nil && !lo.ContainsBy(groups, func(g domain.Group) bool { return g.Id == *groupId }) {
		return form, nil, errors.Validation("group: select a valid choice")
	}
	return form, groupId, nil
}

// postFormFailed maps authoring errors to the page flow: sign in for
// anonymous users, back to the post for strangers, the form again for bad input.
func (h *Handler) postFormFailed(w http.ResponseWriter, r *http.Request, form postFormPage, err error) {
	switch {
	case errors.IsValidation(err):
		if form.Groups == nil {
			form.Groups, _ = h.groups.GetAll(r.Context())
		}
		h.renderTemplateWithError(w, r, http.StatusBadRequest, tmplCreatePost, form, err.Error())
	case errors.IsForbidden(err):
		logger.Log.Info("edit by non-author redirected", "post_id", form.PostId)
		http.Redirect(w, r, postURL(form.PostId), http.StatusFound)
	default:
		h.renderError(w, r, err)
	}
}

func postURL(id domain.PostId) string {
	return "/posts/" + strconv.FormatInt(id, 10) + "/"
}
