package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api"
	"github.com/phrazzld/todo-api/internal/api/middleware"
	"github.com/phrazzld/todo-api/internal/authz"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/platform/redis"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// application holds the shared dependencies of the server and releases
// them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     store.TxBeginner
	redis  *goredis.Client

	// Stores
	userStore    store.UserStore
	projectStore store.ProjectStore
	todoStore    store.TodoStore
	groupStore   store.GroupStore

	// Services
	userService    service.UserService
	projectService service.ProjectService
	todoService    service.TodoService
	groupService   service.GroupService
	tokenService   service.TokenService
}

// newApplication wires stores, services and the refresh token store.
// The database connection is owned by the caller.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db store.TxBeginner) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	var refreshStore auth.RefreshStore
	if cfg.Redis.URL != "" {
		app.redis, err = redis.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		refreshStore = redis.NewRefreshStore(app.redis, logger)
		logger.Info("refresh token rotation enabled")
	} else {
		logger.Warn("redis is not configured, refresh tokens are stateless")
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	policy := authz.DefaultPolicy{}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.projectStore = postgres.NewPostgresProjectStore(db, logger)
	app.todoStore = postgres.NewPostgresTodoStore(db, logger)
	app.groupStore = postgres.NewPostgresGroupStore(db, logger)

	app.userService = service.NewUserService(app.userStore, db, hasher, policy, logger)
	app.projectService = service.NewProjectService(app.projectStore, db, policy, logger)
	app.todoService = service.NewTodoService(app.todoStore, policy, logger)
	app.groupService = service.NewGroupService(app.groupStore, app.userStore, logger)
	app.tokenService = service.NewTokenService(app.userStore, jwtService, hasher, refreshStore, logger)

	logger.Info("application initialized")
	return app, nil
}

// handler builds the HTTP handler serving the API.
func (app *application) handler() http.Handler {
	p := app.config.Pagination
	limits := func(def int) api.PageLimits {
		return api.PageLimits{Default: def, Max: p.MaxLimit}
	}

	return api.NewRouter(api.Handlers{
		Users:    api.NewUserHandler(app.userService, limits(p.UsersDefaultLimit), app.logger),
		Projects: api.NewProjectHandler(app.projectService, limits(p.ProjectsDefaultLimit), app.logger),
		Todos:    api.NewTodoHandler(app.todoService, limits(p.TodosDefaultLimit), app.logger),
		Groups:   api.NewGroupHandler(app.groupService, limits(p.GroupsDefaultLimit), app.logger),
		Tokens:   api.NewTokenHandler(app.tokenService, app.logger),
		Auth:     middleware.NewAuthMiddleware(app.tokenService),
	}, api.RouterConfig{
		Logger:         app.logger,
		AllowedOrigins: app.config.CORS.AllowedOrigins,
	})
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.handler()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources owned by the application.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
