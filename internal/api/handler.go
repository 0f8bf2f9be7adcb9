package api

import (
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/store"
)

// PageLimits configures limit-offset pagination for one resource.
type PageLimits struct {
	Default int
	Max     int
}

// respondPage writes one page of serialized items in the pagination envelope.
func respondPage[T any](w http.ResponseWriter, r *http.Request, page store.Page, count int, items []T, s Serializer[T]) {
	shared.RespondWithJSON(w, r, http.StatusOK, newPageResponse(r, page, count, serializeAll(items, s)))
}
