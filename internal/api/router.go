package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/todo-api/internal/api/middleware"
	"github.com/phrazzld/todo-api/internal/api/shared"
)

// Handlers bundles everything the router serves.
type Handlers struct {
	Users    *UserHandler
	Projects *ProjectHandler
	Todos    *TodoHandler
	Groups   *GroupHandler
	Tokens   *TokenHandler
	Auth     *middleware.AuthMiddleware
}

// RouterConfig holds the router's cross-cutting settings.
type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

type route struct {
	method  string
	pattern string
	handler http.HandlerFunc
}

// routes is the complete API surface. Patterns carry no trailing slash;
// the router strips one from requests before matching.
func (h Handlers) routes() []route {
	return []route{
		{http.MethodGet, "/users", h.Users.List},
		{http.MethodPost, "/users", h.Users.Create},
		{http.MethodGet, "/users/superusers", h.Users.Superusers},
		{http.MethodGet, "/users/{id}", h.Users.Retrieve},
		{http.MethodPut, "/users/{id}", h.Users.Update},
		{http.MethodPatch, "/users/{id}", h.Users.PartialUpdate},
		{http.MethodDelete, "/users/{id}", h.Users.Destroy},
		{http.MethodGet, "/users/{id}/login", h.Users.Login},
		{http.MethodGet, "/users/{id}/fio", h.Users.Fio},

		{http.MethodGet, "/projects", h.Projects.List},
		{http.MethodPost, "/projects", h.Projects.Create},
		{http.MethodGet, "/projects/{id}", h.Projects.Retrieve},
		{http.MethodPut, "/projects/{id}", h.Projects.Update},
		{http.MethodPatch, "/projects/{id}", h.Projects.PartialUpdate},
		{http.MethodDelete, "/projects/{id}", h.Projects.Destroy},

		{http.MethodGet, "/todos", h.Todos.List},
		{http.MethodPost, "/todos", h.Todos.Create},
		{http.MethodGet, "/todos/{id}", h.Todos.Retrieve},
		{http.MethodPut, "/todos/{id}", h.Todos.Update},
		{http.MethodPatch, "/todos/{id}", h.Todos.PartialUpdate},
		{http.MethodDelete, "/todos/{id}", h.Todos.Destroy},

		{http.MethodGet, "/groups", h.Groups.List},
		{http.MethodGet, "/groups/{id}", h.Groups.Retrieve},

		{http.MethodPost, "/token", h.Tokens.Obtain},
		{http.MethodPost, "/token/refresh", h.Tokens.Refresh},
	}
}

// NewRouter builds the HTTP handler from the route table.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Trace(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{middleware.TraceHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(chimw.StripSlashes)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method \""+r.Method+"\" not allowed.")
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(h.Auth.Authenticate)
		for _, rt := range h.routes() {
			api.Method(rt.method, rt.pattern, rt.handler)
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			cfg.Logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
