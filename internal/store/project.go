package store

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// ProjectStore defines the interface for project data persistence.
// Returned projects always carry their member ids.
type ProjectStore interface {
	// Create saves a new project with its members and sets project.ID.
	// Returns ErrInvalidEntity if a member does not exist.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID retrieves a project by primary key.
	// Returns ErrProjectNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Project, error)

	// List returns one page of projects matching the filter and the total count.
	List(ctx context.Context, filter ProjectFilter, page Page) ([]*domain.Project, int, error)

	// Update saves the project's fields and replaces its members.
	Update(ctx context.Context, project *domain.Project) error

	// Delete removes the project and, by cascade, its todos.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a ProjectStore bound to the given transaction.
	WithTx(tx DBTX) ProjectStore
}
