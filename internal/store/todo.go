package store

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// TodoStore defines the interface for todo data persistence.
type TodoStore interface {
	// Create saves a new todo and sets todo.ID.
	// Returns ErrInvalidEntity if the project or user does not exist.
	Create(ctx context.Context, todo *domain.Todo) error

	// GetByID retrieves a todo by primary key.
	// Returns ErrTodoNotFound if it does not exist or is hidden by vis.
	GetByID(ctx context.Context, id int64, vis domain.Visibility) (*domain.Todo, error)

	// List returns one page of todos matching the filter and the total count.
	List(ctx context.Context, filter TodoFilter, page Page) ([]*domain.Todo, int, error)

	// Update saves an active todo's project, author and text.
	// Returns ErrTodoNotFound if the todo does not exist or is inactive.
	Update(ctx context.Context, todo *domain.Todo) error

	// SetLifecycle persists a lifecycle transition.
	// Returns ErrTodoNotFound if the todo does not exist.
	SetLifecycle(ctx context.Context, id int64, lifecycle domain.Lifecycle) error
}
