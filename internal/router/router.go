package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	yatubemw "github.com/yatube-dev/yatube/internal/middleware"
	"github.com/yatube-dev/yatube/internal/setup"
	"github.com/yatube-dev/yatube/shared/logger"
	mw "github.com/yatube-dev/yatube/shared/middleware"
	"github.com/yatube-dev/yatube/shared/middleware/metrics"
	rl "github.com/yatube-dev/yatube/shared/middleware/ratelimiter"
)

// New creates the chi router with the site pages, the JSON API and the
// operational endpoints.
// Each rate limiter is shared by every route it wraps.
func New(deps *setup.Dependencies) chi.Router {
	h := deps.Handler
	authMw := deps.AuthMiddleware
	public := deps.Config.Public

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logger.RequestLogger)
	r.Use(metrics.Middleware)
	r.Use(mw.LimitBody(mw.MaxBodySize))

	r.NotFound(h.NotFound)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	// Site pages
	r.Group(func(r chi.Router) {
		r.Use(mw.SecurityHeadersWithCSP(public.SecureCookies, mw.PageCSP))
		r.Use(authMw.OptionalAuth())
		r.Use(yatubemw.GenerateCSRFToken(yatubemw.CSRFConfig{SecureCookies: public.SecureCookies}))
		r.Use(yatubemw.ValidateCSRFToken())

		r.Get("/", h.Index)
		r.Get("/group/{slug}/", h.GroupPosts)
		r.Get("/profile/{username}/", h.Profile)
		r.Get("/posts/{id}/", h.PostDetail)
		r.Get("/about/author/", h.AboutAuthor)
		r.Get("/about/tech/", h.AboutTech)

		r.Group(func(r chi.Router) {
			r.Use(yatubemw.LoginRequired)
			r.Get("/create/", h.PostCreateGet)
			r.Post("/create/", h.PostCreatePost)
			r.Get("/posts/{id}/edit/", h.PostEditGet)
			r.Post("/posts/{id}/edit/", h.PostEditPost)
		})

		// only submissions count against the limit, the forms stay reachable
		authLimit := mw.RateLimitWithHandler(rl.LoginBurst(), mw.GetIP, h.TooManyRequests)
		r.Route("/auth", func(r chi.Router) {
			r.Get("/signup/", h.SignupGet)
			r.With(authLimit).Post("/signup/", h.SignupPost)
			r.Get("/login/", h.LoginGet)
			r.With(authLimit).Post("/login/", h.LoginPost)
			r.Post("/logout/", h.Logout)
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   public.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		r.Use(mw.SecurityHeadersWithCSP(public.SecureCookies, mw.APICSP))
		r.NotFound(http.NotFound)

		r.With(mw.RateLimit(rl.LoginBurst(), mw.GetIP)).Post("/auth/token/", h.APIToken)

		r.Get("/posts/", h.APIPosts)
		r.Get("/posts/{id}/", h.APIPost)
		r.Get("/groups/", h.APIGroups)
		r.Get("/groups/{slug}/posts/", h.APIGroupPosts)

		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Use(mw.RateLimit(rl.Rps100(), mw.GetUserIDFromContext))
			r.Post("/posts/", h.APICreatePost)
			r.Patch("/posts/{id}/", h.APIPatchPost)
		})
	})

	return r
}
