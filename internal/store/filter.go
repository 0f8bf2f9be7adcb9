package store

import (
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
)

// Page is a limit-offset window over an ordered result set.
type Page struct {
	Limit  int
	Offset int
}

// UserFilter narrows user listings. Zero values mean "no constraint".
type UserFilter struct {
	Visibility  domain.Visibility
	Login       *string // case-sensitive substring of the username; set even when empty
	Username    string // exact username
	Email       string // exact email
	IsSuperuser *bool
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Name   string // case-insensitive substring
	UserID int64  // projects having this member
}

// TodoFilter narrows todo listings.
type TodoFilter struct {
	Visibility    domain.Visibility
	ProjectID     int64
	UserID        int64
	Text          string // case-insensitive substring
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
