package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yatube-dev/yatube/shared/api"
	"github.com/yatube-dev/yatube/shared/domain"
	"github.com/yatube-dev/yatube/shared/logger"
	mw "github.com/yatube-dev/yatube/shared/middleware"
	"github.com/yatube-dev/yatube/shared/utils"
)

// writeJSON encodes before touching the response so an encoding failure
// still produces a clean 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("encoding response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func (h *Handler) APIToken(w http.ResponseWriter, r *http.Request) {
	var req api.CredentialsRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	token, _, err := h.auth.Login(r.Context(), domain.Credentials{Username: req.Username, Password: req.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.TokenResponse{Token: token})
}

func (h *Handler) APIPosts(w http.ResponseWriter, r *http.Request) {
	page, err := h.listing.Index(r.Context(), utils.ParsePage(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewPageResponse(*page))
}

func (h *Handler) APIPost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewPostResponse(*post))
}

func (h *Handler) APICreatePost(w http.ResponseWriter, r *http.Request) {
	var req api.PostForm
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	post, err := h.authoring.SubmitCreate(r.Context(), mw.GetUserFromContext(r), req.Text, req.Group)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.NewPostResponse(*post))
}

// APIPatchPost keeps whatever the body leaves out.
func (h *Handler) APIPatchPost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostId(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var req api.PostPatchRequest
	if err := utils.Decode(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user := mw.GetUserFromContext(r)
	current, err := h.authoring.Editable(r.Context(), user, id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	text := current.Text
	if req.Text != nil {
		text = *req.Text
	}
	var groupId *domain.GroupId
	if current.Group != nil {
		groupId = &current.Group.Id
	}
	if req.Group.Set {
		groupId = req.Group.Value
	}

	post, err := h.authoring.SubmitEdit(r.Context(), user, id, text, groupId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewPostResponse(*post))
}

func (h *Handler) APIGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.GetAll(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewGroupListResponse(groups))
}

func (h *Handler) APIGroupPosts(w http.ResponseWriter, r *http.Request) {
	page, err := h.listing.Group(r.Context(), chi.URLParam(r, "slug"), utils.ParsePage(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewPageResponse(page.Page))
}
