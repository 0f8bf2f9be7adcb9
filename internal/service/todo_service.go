package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/authz"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// TodoService provides the todo resource operations.
// Reads only ever see active todos; deleting a todo deactivates it.
type TodoService interface {
	List(ctx context.Context, filter store.TodoFilter, page store.Page) ([]*domain.Todo, int, error)
	Get(ctx context.Context, id int64) (*domain.Todo, error)
	Create(ctx context.Context, principal *domain.User, in TodoInput) (*domain.Todo, error)
	Update(ctx context.Context, principal *domain.User, id int64, in TodoInput, partial bool) (*domain.Todo, error)

	// Destroy deactivates the todo. Destroying an inactive todo succeeds.
	Destroy(ctx context.Context, principal *domain.User, id int64) error
}

// TodoServiceImpl implements the TodoService interface
type TodoServiceImpl struct {
	todoStore  store.TodoStore
	authorizer authz.Authorizer
	logger     *slog.Logger
}

// NewTodoService creates a new TodoService
func NewTodoService(todoStore store.TodoStore, authorizer authz.Authorizer, logger *slog.Logger) TodoService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoServiceImpl{
		todoStore:  todoStore,
		authorizer: authorizer,
		logger:     logger.With("component", "todo_service"),
	}
}

// List implements TodoService.List
func (s *TodoServiceImpl) List(ctx context.Context, filter store.TodoFilter, page store.Page) ([]*domain.Todo, int, error) {
	filter.Visibility = domain.VisibleActive

	todos, total, err := s.todoStore.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, total, nil
}

// Get implements TodoService.Get
func (s *TodoServiceImpl) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	todo, err := s.todoStore.GetByID(ctx, id, domain.VisibleActive)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve todo: %w", err)
	}
	return todo, nil
}

// Create implements TodoService.Create
// The author defaults to the principal when the payload names none.
func (s *TodoServiceImpl) Create(ctx context.Context, principal *domain.User, in TodoInput) (*domain.Todo, error) {
	if err := s.authorizer.Authorize(ctx, principal, authz.ResourceTodo, authz.ActionCreate, nil); err != nil {
		return nil, err
	}

	var authorID int64
	if principal != nil {
		authorID = principal.ID
	}
	if in.User != nil {
		authorID = *in.User
	}
	if err := checkAuthor(principal, authorID); err != nil {
		return nil, err
	}

	todo, err := domain.NewTodo(pick(in.Project, 0, false), authorID, pick(in.Text, "", false))
	if err != nil {
		return nil, err
	}
	if err := s.todoStore.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Info("todo created successfully",
		"todo_id", todo.ID,
		"project_id", todo.ProjectID,
		"user_id", todo.UserID)
	return todo, nil
}

// Update implements TodoService.Update
func (s *TodoServiceImpl) Update(
	ctx context.Context,
	principal *domain.User,
	id int64,
	in TodoInput,
	partial bool,
) (*domain.Todo, error) {
	todo, err := s.todoStore.GetByID(ctx, id, domain.VisibleActive)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve todo for update: %w", err)
	}
	if err := s.authorizer.Authorize(ctx, principal, authz.ResourceTodo, authz.ActionUpdate, todo); err != nil {
		return nil, err
	}

	todo.ProjectID = pick(in.Project, todo.ProjectID, partial)
	todo.Text = pick(in.Text, todo.Text, partial)
	if in.User != nil {
		if err := checkAuthor(principal, *in.User); err != nil {
			return nil, err
		}
		todo.UserID = *in.User
	}
	if err := todo.Validate(); err != nil {
		return nil, err
	}

	if err := s.todoStore.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	s.logger.Info("todo updated successfully",
		"todo_id", id,
		"partial", partial)
	return todo, nil
}

// Destroy implements TodoService.Destroy
// The todo is looked up regardless of lifecycle and deactivated; the row
// stays in the store.
func (s *TodoServiceImpl) Destroy(ctx context.Context, principal *domain.User, id int64) error {
	todo, err := s.todoStore.GetByID(ctx, id, domain.VisibleAll)
	if err != nil {
		return fmt.Errorf("failed to retrieve todo for deletion: %w", err)
	}
	if err := s.authorizer.Authorize(ctx, principal, authz.ResourceTodo, authz.ActionDestroy, todo); err != nil {
		return err
	}

	todo.Deactivate()
	if err := s.todoStore.SetLifecycle(ctx, todo.ID, todo.Lifecycle); err != nil {
		s.logger.Error("failed to deactivate todo",
			"error", err,
			"todo_id", id)
		return fmt.Errorf("failed to deactivate todo: %w", err)
	}

	s.logger.Info("todo deactivated", "todo_id", id)
	return nil
}

// checkAuthor lets only superusers file todos under someone else's name.
func checkAuthor(principal *domain.User, authorID int64) error {
	if principal == nil || principal.IsSuperuser || principal.ID == authorID {
		return nil
	}
	return ErrAuthorChange
}
