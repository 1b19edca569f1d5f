package handler

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/yatube-dev/yatube/internal/middleware"
	"github.com/yatube-dev/yatube/shared/domain"
	"github.com/yatube-dev/yatube/shared/errors"
	mw "github.com/yatube-dev/yatube/shared/middleware"
)

type authFormPage struct {
	Username string
	Next     string
}

func (h *Handler) SignupGet(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, tmplSignup, authFormPage{})
}

// SignupPost creates the account and signs the new user in.
func (h *Handler) SignupPost(w http.ResponseWriter, r *http.Request) {
	creds := readCredentials(r)
	form := authFormPage{Username: creds.Username}

	if _, err := h.auth.Signup(r.Context(), creds); err != nil {
		h.authFormFailed(w, r, tmplSignup, form, err)
		return
	}
	token, _, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		h.authFormFailed(w, r, tmplSignup, form, err)
		return
	}
	h.setAccessToken(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, tmplLogin, authFormPage{Next: r.URL.Query().Get("next")})
}

func (h *Handler) LoginPost(w http.ResponseWriter, r *http.Request) {
	creds := readCredentials(r)
	form := authFormPage{Username: creds.Username, Next: r.PostFormValue("next")}

	if creds.Username == "" || creds.Password == "" {
		h.authFormFailed(w, r, tmplLogin, form, errors.Validation("Enter username and password"))
		return
	}
	token, _, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		h.authFormFailed(w, r, tmplLogin, form, err)
		return
	}
	h.setAccessToken(w, token)
	http.Redirect(w, r, middleware.SafeNext(form.Next, "/"), http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     mw.AccessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) setAccessToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     mw.AccessTokenCookie,
		Value:    token,
		MaxAge:   int(h.Public.JwtTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) authFormFailed(w http.ResponseWriter, r *http.Request, name string, form authFormPage, err error) {
	var e *errors.ErrorWithStatusCode
	if !stderrors.As(err, &e) {
		h.renderError(w, r, err)
		return
	}
	h.renderTemplateWithError(w, r, e.StatusCode, name, form, e.Message)
}

func readCredentials(r *http.Request) domain.Credentials {
	return domain.Credentials{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
}
