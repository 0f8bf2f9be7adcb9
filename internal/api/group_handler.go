package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/service"
)

// GroupHandler serves the read-only permission group resource.
type GroupHandler struct {
	groupService service.GroupService
	limits       PageLimits
	logger       *slog.Logger
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService service.GroupService, limits PageLimits, logger *slog.Logger) *GroupHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GroupHandler")
	}
	return &GroupHandler{
		groupService: groupService,
		limits:       limits,
		logger:       logger.With(slog.String("component", "group_handler")),
	}
}

// List handles GET /api/groups/
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	serialize, err := groupSerializer(capabilityFor(r.Method))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	page, err := pageParams(r.URL.Query(), h.limits.Default, h.limits.Max)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	groups, count, err := h.groupService.List(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list groups.")
		return
	}
	respondPage(w, r, page, count, groups, serialize)
}

// Retrieve handles GET /api/groups/{id}/
func (h *GroupHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	serialize, err := groupSerializer(capabilityFor(r.Method))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	group, err := h.groupService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve group.")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, serialize(group))
}
