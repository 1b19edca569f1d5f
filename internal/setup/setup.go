package setup

import (
	"context"
	"html/template"

	"github.com/yatube-dev/yatube/internal/handler"
	"github.com/yatube-dev/yatube/internal/markdown"
	"github.com/yatube-dev/yatube/internal/service"
	"github.com/yatube-dev/yatube/internal/storage/memory"
	"github.com/yatube-dev/yatube/internal/storage/sql"
	"github.com/yatube-dev/yatube/internal/templates"
	"github.com/yatube-dev/yatube/internal/utils"
	"github.com/yatube-dev/yatube/shared/config"
	"github.com/yatube-dev/yatube/shared/jwt"
	"github.com/yatube-dev/yatube/shared/logger"
	mw "github.com/yatube-dev/yatube/shared/middleware"
)

const DriverMemory = "memory"

// Store is everything the services need from a storage backend.
type Store interface {
	service.AuthStorage
	service.GroupStorage
	service.PostStorage
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*sql.Store)(nil)
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        Store
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
	Jwt            jwt.JwtService
	Groups         service.GroupService
	Auth           service.AuthService
	Posts          service.PostService
}

// OpenStore picks the backend named by the database driver setting.
func OpenStore(db config.Database, connCfg sql.ConnectionConfig) (Store, error) {
	if db.Driver == DriverMemory {
		logger.Log.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	}
	store, err := sql.New(db.Driver, db.DSN, connCfg)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := OpenStore(cfg.Private.Database, sql.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	deps, err := Build(cfg, storage)
	if err != nil {
		storage.Close()
		return nil, err
	}
	return deps, nil
}

// Build wires services and handlers on top of an already opened store.
func Build(cfg *config.Config, storage Store) (*Dependencies, error) {
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, utils.NewUserValidator(cfg.Public), jwtService)
	groups := service.NewGroup(storage, utils.NewGroupValidator(cfg.Public))
	posts := service.NewPost(storage, utils.NewPostValidator(cfg.Public))
	listing := service.NewListing(posts, groups, storage, cfg.Public.PostsPerPage)
	authoring := service.NewAuthoring(posts)

	textProcessor := markdown.New()
	tmpls, err := templates.Load(template.FuncMap{"markdown": textProcessor.Render})
	if err != nil {
		return nil, err
	}

	h := handler.New(tmpls, cfg.Public, posts, groups, auth, listing, authoring, storage)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(jwtService),
		Jwt:            jwtService,
		Groups:         groups,
		Auth:           auth,
		Posts:          posts,
	}, nil
}
