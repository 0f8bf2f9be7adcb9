package store

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// GroupStore provides read-only access to permission groups.
// Returned groups always carry their permissions.
type GroupStore interface {
	// GetByID retrieves a group by primary key.
	// Returns ErrGroupNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.PermissionGroup, error)

	// List returns one page of groups ordered by id and the total count.
	List(ctx context.Context, page Page) ([]*domain.PermissionGroup, int, error)

	// LoadMembers fills Users for the given groups, regardless of the
	// members' lifecycle. Members' own relations are not loaded.
	LoadMembers(ctx context.Context, groups []*domain.PermissionGroup) error
}
