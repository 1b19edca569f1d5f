package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/yatube-dev/yatube/internal/middleware"
	"github.com/yatube-dev/yatube/shared/domain"
	"github.com/yatube-dev/yatube/shared/errors"
	"github.com/yatube-dev/yatube/shared/logger"
	mw "github.com/yatube-dev/yatube/shared/middleware"
	"github.com/yatube-dev/yatube/shared/utils"
)

const (
	tmplIndex      = "posts/index.html"
	tmplGroupList  = "posts/group_list.html"
	tmplProfile    = "posts/profile.html"
	tmplPostDetail = "posts/post_detail.html"
	tmplCreatePost = "posts/create_post.html"
	tmplAuthor     = "about/author.html"
	tmplTech       = "about/tech.html"
	tmplLogin      = "users/login.html"
	tmplSignup     = "users/signup.html"
	tmplNotFound   = "core/404.html"
	tmplTooMany    = "core/429.html"
)

// CommonTemplateData is available in templates as .Common.
type CommonTemplateData struct {
	User      *domain.User
	CSRFToken string
	Error     string
}

// TemplateData wraps page-specific data with common template data.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

func (h *Handler) initCommonTemplateData(r *http.Request) CommonTemplateData {
	return CommonTemplateData{
		User:      mw.GetUserFromContext(r),
		CSRFToken: middleware.GetCSRFTokenFromContext(r),
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, http.StatusOK, name, data, "")
}

// renderTemplateWithError renders into a buffer first so a template failure
// never leaves a half-written page behind.
func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, status int, name string, data any, errMsg string) {
	tmpl, ok := h.Templates[name]
	if !ok {
		logger.Log.Error("template not found", "template", name)
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := h.initCommonTemplateData(r)
	common.Error = errMsg

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, TemplateData{Data: data, Common: common}); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError answers a failed page request. Validation errors are handled
// by the form handlers themselves.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.IsNotFound(err):
		h.renderTemplateWithError(w, r, http.StatusNotFound, tmplNotFound, nil, "")
	case errors.IsUnauthorized(err):
		http.Redirect(w, r, middleware.LoginURL(r.URL.RequestURI()), http.StatusFound)
	default:
		utils.WriteErrorAndStatusCode(w, err)
	}
}
