package handler

import "net/http"

func (h *Handler) AboutAuthor(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, tmplAuthor, nil)
}

func (h *Handler) AboutTech(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, tmplTech, nil)
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderTemplateWithError(w, r, http.StatusNotFound, tmplNotFound, nil, "")
}

// TooManyRequests is shown by the rate limiter on HTML routes.
func (h *Handler) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.renderTemplateWithError(w, r, http.StatusTooManyRequests, tmplTooMany, nil, "")
}
