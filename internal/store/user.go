package store

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user with its role and project memberships and sets user.ID.
	// PasswordHash must already be set.
	// Returns ErrUsernameExists if the username is taken and ErrInvalidEntity
	// if a role or project does not exist.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user's own fields by primary key.
	// Returns ErrUserNotFound if the user does not exist or is hidden by vis.
	GetByID(ctx context.Context, id int64, vis domain.Visibility) (*domain.User, error)

	// GetByUsername retrieves a user by username regardless of lifecycle.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns one page of users matching the filter and the total
	// number of matching users, ordered by id.
	List(ctx context.Context, filter UserFilter, page Page) ([]*domain.User, int, error)

	// ListSuperusers returns every superuser regardless of lifecycle.
	ListSuperusers(ctx context.Context) ([]*domain.User, error)

	// Update saves the user's own fields and replaces its role and project memberships.
	// If PasswordHash is empty the stored hash is kept.
	// Returns ErrUserNotFound if the user does not exist or is inactive.
	Update(ctx context.Context, user *domain.User) error

	// SetLifecycle persists a lifecycle transition.
	// Returns ErrUserNotFound if the user does not exist.
	SetLifecycle(ctx context.Context, id int64, lifecycle domain.Lifecycle) error

	// LoadRelations fills RoleIDs, ProjectIDs, Todos (active only), Projects
	// and Roles for all given users with one query per relation.
	LoadRelations(ctx context.Context, users []*domain.User) error

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx DBTX) UserStore
}
