package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
)

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	todoService service.TodoService
	limits         PageLimits
	logger         *slog.Logger
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoService service.TodoService, limits PageLimits, logger *slog.Logger) *TodoHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TodoHandler")
	}
	return &TodoHandler{
		todoService: todoService,
		limits:         limits,
		logger:         logger.With(slog.String("component", "todo_handler")),
	}
}

var serializeTodo Serializer[*domain.Todo] = func(t *domain.Todo) any { return toTodo(t) }

// List handles GET /api/todos/
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := todoFilterFromQuery(q)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	page, err := pageParams(q, h.limits.Default, h.limits.Max)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	todos, count, err := h.todoService.List(r.Context(), filter, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list todos.")
		return
	}
	respondPage(w, r, page, count, todos, serializeTodo)
}

// Retrieve handles GET /api/todos/{id}/
func (h *TodoHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	todo, err := h.todoService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve todo.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializeTodo(todo))
}

// Create handles POST /api/todos/
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TodoRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	todo, err := h.todoService.Create(r.Context(), shared.PrincipalFromContext(r.Context()), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create todo.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, serializeTodo(todo))
}

// Update handles PUT /api/todos/{id}/
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// PartialUpdate handles PATCH /api/todos/{id}/
func (h *TodoHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *TodoHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req TodoRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	todo, err := h.todoService.Update(r.Context(), shared.PrincipalFromContext(r.Context()), id, req.toInput(), partial)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update todo.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializeTodo(todo))
}

// Destroy handles DELETE /api/todos/{id}/
// The todo is deactivated, and deleting it again succeeds.
func (h *TodoHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.todoService.Destroy(r.Context(), shared.PrincipalFromContext(r.Context()), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete todo.")
		return
	}
	shared.RespondNoContent(w)
}
