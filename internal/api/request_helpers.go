package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// errMalformedBody marks request bodies that are not valid JSON.
var errMalformedBody = errors.New("malformed request body")

// Query parameter names for limit-offset pagination.
const (
	limitParam  = "limit"
	offsetParam = "offset"
)

// dateLayout is the wire format of birthdates and date-only filters.
const dateLayout = "2006-01-02"

// pathID extracts a primary key from the URL path. A key that is not a
// positive integer cannot name any row, so it is reported as not found.
func pathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", store.ErrNotFound, paramName, raw)
	}
	return id, nil
}

// decodeAndValidate decodes the JSON body into req and runs its validate tags.
func decodeAndValidate(r *http.Request, req any) error {
	if err := shared.DecodeJSON(r, req); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			return err
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return shared.ValidateRequest(req)
}

// pageParams reads limit and offset. A missing limit uses defaultLimit and a
// limit above maxLimit is clamped.
func pageParams(q url.Values, defaultLimit, maxLimit int) (store.Page, error) {
	page := store.Page{Limit: defaultLimit}

	if raw := q.Get(limitParam); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return store.Page{}, domain.NewValidationError(limitParam, "must be a positive integer", nil)
		}
		page.Limit = limit
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}

	if raw := q.Get(offsetParam); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return store.Page{}, domain.NewValidationError(offsetParam, "must be a non-negative integer", nil)
		}
		page.Offset = offset
	}
	return page, nil
}

// queryID parses an optional positive id filter. Zero means "not set".
func queryID(q url.Values, name string) (int64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// queryBool parses an optional boolean filter. It accepts the spellings
// browsers and query builders commonly send.
func queryBool(q url.Values, name string) (*bool, error) {
	raw := strings.ToLower(q.Get(name))
	switch raw {
	case "":
		return nil, nil
	case "true", "1", "yes", "on":
		v := true
		return &v, nil
	case "false", "0", "no", "off":
		v := false
		return &v, nil
	default:
		return nil, domain.NewValidationError(name, "must be a boolean", domain.ErrInvalidFormat)
	}
}

// queryTime parses an optional RFC 3339 timestamp or YYYY-MM-DD date.
// A date means midnight UTC.
func queryTime(q url.Values, name string) (*time.Time, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return &t, nil
	}
	return nil, domain.NewValidationError(name, "must be an RFC 3339 timestamp or YYYY-MM-DD date", domain.ErrInvalidFormat)
}

// parseDate parses an optional birthdate from a request payload.
func parseDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, domain.NewValidationError(field, "must be a YYYY-MM-DD date", domain.ErrInvalidFormat)
	}
	return &t, nil
}

// userFilterFromQuery builds the user list filter from query parameters.
func userFilterFromQuery(q url.Values) (store.UserFilter, error) {
	isSuperuser, err := queryBool(q, "is_superuser")
	if err != nil {
		return store.UserFilter{}, err
	}
	var login *string
	if q.Has("login") {
		v := q.Get("login")
		login = &v
	}
	return store.UserFilter{
		Login:       login,
		Username:    q.Get("username"),
		Email:       q.Get("email"),
		IsSuperuser: isSuperuser,
	}, nil
}

// projectFilterFromQuery builds the project list filter from query parameters.
func projectFilterFromQuery(q url.Values) (store.ProjectFilter, error) {
	userID, err := queryID(q, "user")
	if err != nil {
		return store.ProjectFilter{}, err
	}
	return store.ProjectFilter{Name: q.Get("name"), UserID: userID}, nil
}

// todoFilterFromQuery builds the todo list filter from query parameters.
func todoFilterFromQuery(q url.Values) (store.TodoFilter, error) {
	var (
		f   store.TodoFilter
		err error
	)
	if f.ProjectID, err = queryID(q, "project"); err != nil {
		return f, err
	}
	if f.UserID, err = queryID(q, "user"); err != nil {
		return f, err
	}
	if f.CreatedAfter, err = queryTime(q, "created_after"); err != nil {
		return f, err
	}
	if f.CreatedBefore, err = queryTime(q, "created_before"); err != nil {
		return f, err
	}
	f.Text = q.Get("text")
	return f, nil
}
