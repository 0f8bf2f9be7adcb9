package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService service.UserService
	limits      PageLimits
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, limits PageLimits, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}
	return &UserHandler{
		userService: userService,
		limits:      limits,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /api/users/
// Only active users are listed. The login parameter narrows the list to
// usernames containing it.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := userFilterFromQuery(q)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	page, err := pageParams(q, h.limits.Default, h.limits.Max)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	users, count, err := h.userService.List(r.Context(), filter, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users.")
		return
	}
	respondPage(w, r, page, count, users, userSerializer(capabilityFor(r.Method)))
}

// Retrieve handles GET /api/users/{id}/
func (h *UserHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve user.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userSerializer(capabilityFor(r.Method))(user))
}

// Create handles POST /api/users/
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	in, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.Create(r.Context(), shared.PrincipalFromContext(r.Context()), in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user.")
		return
	}

	log.Debug("user created", slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, userSerializer(capabilityFor(r.Method))(user))
}

// Update handles PUT /api/users/{id}/
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// PartialUpdate handles PATCH /api/users/{id}/
func (h *UserHandler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	in, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.Update(r.Context(), shared.PrincipalFromContext(r.Context()), id, in, partial)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update user.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userSerializer(capabilityFor(r.Method))(user))
}

// Destroy handles DELETE /api/users/{id}/
// The user is deactivated, not removed.
func (h *UserHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userService.Destroy(r.Context(), shared.PrincipalFromContext(r.Context()), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user.")
		return
	}
	shared.RespondNoContent(w)
}

// Superusers handles GET /api/users/superusers/
// Every superuser is listed in the flat representation, active or not.
func (h *UserHandler) Superusers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.Superusers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list superusers.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serializeAll(users, userSerializer(Write)))
}

// Login handles GET /api/users/{id}/login/
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	login, err := h.userService.Login(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve login.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{Login: login})
}

// Fio handles GET /api/users/{id}/fio/
func (h *UserHandler) Fio(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	fio, err := h.userService.FullName(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve full name.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, FioResponse{Fio: fio})
}
