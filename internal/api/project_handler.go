package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
)

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	projectService service.ProjectService
	limits         PageLimits
	logger         *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService service.ProjectService, limits PageLimits, logger *slog.Logger) *ProjectHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProjectHandler")
	}
	return &ProjectHandler{
		projectService: projectService,
		limits:         limits,
		logger:         logger.With(slog.String("component", "project_handler")),
	}
}

var serializeProject Serializer[*domain.Project] = func(p *domain.Project) any { return toProject(p) }

// List handles GET /api/projects/
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := projectFilterFromQuery(q)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	page, err := pageParams(q, h.limits.Default, h.limits.Max)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	projects, count, err := h.projectService.List(r.Context(), filter, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list projects.")
		return
	}
	respondPage(w, r, page, count, projects, serializeProject)
}

// Retrieve handles GET /api/projects/{id}/
func (h *ProjectHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	project, err := h.projectService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve project.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializeProject(project))
}

// Create handles POST /api/projects/
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	project, err := h.projectService.Create(r.Context(), shared.PrincipalFromContext(r.Context()), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create project.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, serializeProject(project))
}

// Update handles PUT /api/projects/{id}/
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// PartialUpdate handles PATCH /api/projects/{id}/
func (h *ProjectHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *ProjectHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req ProjectRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	project, err := h.projectService.Update(r.Context(), shared.PrincipalFromContext(r.Context()), id, req.toInput(), partial)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update project.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializeProject(project))
}

// Destroy handles DELETE /api/projects/{id}/
// Projects are removed together with their todos.
func (h *ProjectHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.projectService.Destroy(r.Context(), shared.PrincipalFromContext(r.Context()), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete project.")
		return
	}
	shared.RespondNoContent(w)
}
