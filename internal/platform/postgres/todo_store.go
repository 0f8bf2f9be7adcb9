package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

var todoColumns = []string{"id", "project_id", "user_id", "text", "active", "created", "updated"}

// PostgresTodoStore implements the store.TodoStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTodoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTodoStore creates a new PostgreSQL implementation of the TodoStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTodoStore(db store.DBTX, logger *slog.Logger) *PostgresTodoStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

// Ensure PostgresTodoStore implements store.TodoStore interface
var _ store.TodoStore = (*PostgresTodoStore)(nil)

func scanTodo(row pgx.Row) (*domain.Todo, error) {
	var t domain.Todo
	var active bool
	if err := row.Scan(&t.ID, &t.ProjectID, &t.UserID, &t.Text, &active, &t.Created, &t.Updated); err != nil {
		return nil, err
	}
	t.Lifecycle = domain.LifecycleFromFlag(active)
	return &t, nil
}

// Create implements store.TodoStore.Create
// Returns store.ErrInvalidEntity if the project or author does not exist.
func (s *PostgresTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := todo.Validate(); err != nil {
		log.Warn("todo validation failed during create", slog.String("error", err.Error()))
		return err
	}
	now := time.Now().UTC()
	if todo.Created.IsZero() {
		todo.Created = now
	}
	if todo.Updated.IsZero() {
		todo.Updated = now
	}

	err := s.db.QueryRow(ctx, `
		INSERT INTO todos (project_id, user_id, text, active, created, updated)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		todo.ProjectID,
		todo.UserID,
		todo.Text,
		todo.Lifecycle.Flag(),
		todo.Created,
		todo.Updated,
	).Scan(&todo.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during todo creation",
				slog.String("error", err.Error()),
				slog.Int64("project_id", todo.ProjectID),
				slog.Int64("user_id", todo.UserID))
			return fmt.Errorf("%w: project %d or user %d not found",
				store.ErrInvalidEntity, todo.ProjectID, todo.UserID)
		}
		log.Error("failed to create todo",
			slog.String("error", err.Error()),
			slog.Int64("project_id", todo.ProjectID))
		return MapError(err)
	}

	log.Info("todo created successfully",
		slog.Int64("todo_id", todo.ID),
		slog.Int64("project_id", todo.ProjectID),
		slog.Int64("user_id", todo.UserID))
	return nil
}

// GetByID implements store.TodoStore.GetByID
func (s *PostgresTodoStore) GetByID(ctx context.Context, id int64, vis domain.Visibility) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := whereAll(
		psql.Select(todoColumns...).From("todos").Where(squirrel.Eq{"id": id}),
		[]squirrel.Sqlizer{visibilityPredicate(vis, "active")},
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building todo query: %w", err)
	}

	todo, err := scanTodo(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug("todo not found",
				slog.Int64("todo_id", id),
				slog.String("visibility", vis.String()))
			return nil, store.ErrTodoNotFound
		}
		log.Error("failed to get todo by ID",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", id))
		return nil, MapError(err)
	}
	return todo, nil
}

// List implements store.TodoStore.List
func (s *PostgresTodoStore) List(ctx context.Context, filter store.TodoFilter, page store.Page) ([]*domain.Todo, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	preds := todoPredicates(filter)

	countSQL, countArgs, err := whereAll(psql.Select("COUNT(*)").From("todos"), preds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building todo count query: %w", err)
	}
	var total int
	if err := s.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count todos", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	query, args, err := withPage(whereAll(psql.Select(todoColumns...).From("todos"), preds), page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building todo list query: %w", err)
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		log.Error("failed to list todos", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	defer rows.Close()

	todos := []*domain.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}
	return todos, total, nil
}

// Update implements store.TodoStore.Update
// Inactive todos are treated as missing.
func (s *PostgresTodoStore) Update(ctx context.Context, todo *domain.Todo) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := todo.Validate(); err != nil {
		log.Warn("todo validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", todo.ID))
		return err
	}
	todo.Updated = time.Now().UTC()

	tag, err := s.db.Exec(ctx, `
		UPDATE todos
		SET project_id = $1, user_id = $2, text = $3, updated = $4
		WHERE id = $5 AND active
	`,
		todo.ProjectID,
		todo.UserID,
		todo.Text,
		todo.Updated,
		todo.ID,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: project %d or user %d not found",
				store.ErrInvalidEntity, todo.ProjectID, todo.UserID)
		}
		log.Error("failed to update todo",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", todo.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(tag, store.ErrTodoNotFound); err != nil {
		log.Debug("active todo not found for update", slog.Int64("todo_id", todo.ID))
		return err
	}

	log.Info("todo updated successfully", slog.Int64("todo_id", todo.ID))
	return nil
}

// SetLifecycle implements store.TodoStore.SetLifecycle
// The updated timestamp only moves when the lifecycle actually changes.
func (s *PostgresTodoStore) SetLifecycle(ctx context.Context, id int64, lifecycle domain.Lifecycle) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tag, err := s.db.Exec(ctx, `
		UPDATE todos
		SET active = $1, updated = CASE WHEN active = $1 THEN updated ELSE NOW() END
		WHERE id = $2
	`, lifecycle.Flag(), id)
	if err != nil {
		log.Error("failed to set todo lifecycle",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(tag, store.ErrTodoNotFound); err != nil {
		return err
	}

	log.Info("todo lifecycle changed",
		slog.Int64("todo_id", id),
		slog.String("lifecycle", lifecycle.String()))
	return nil
}
