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

var projectColumns = []string{"id", "name", "repository", "created", "updated"}

// PostgresProjectStore implements the store.ProjectStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProjectStore creates a new PostgreSQL implementation of the ProjectStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresProjectStore(db store.DBTX, logger *slog.Logger) *PostgresProjectStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "project_store")),
	}
}

// Ensure PostgresProjectStore implements store.ProjectStore interface
var _ store.ProjectStore = (*PostgresProjectStore)(nil)

// WithTx implements store.ProjectStore.WithTx
func (s *PostgresProjectStore) WithTx(tx store.DBTX) store.ProjectStore {
	return &PostgresProjectStore{db: tx, logger: s.logger}
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Repository, &p.Created, &p.Updated); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create implements store.ProjectStore.Create
func (s *PostgresProjectStore) Create(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.Warn("project validation failed during create", slog.String("error", err.Error()))
		return err
	}
	now := time.Now().UTC()
	if project.Created.IsZero() {
		project.Created = now
	}
	if project.Updated.IsZero() {
		project.Updated = now
	}

	err := s.db.QueryRow(ctx, `
		INSERT INTO projects (name, repository, created, updated)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, project.Name, project.Repository, project.Created, project.Updated).Scan(&project.ID)
	if err != nil {
		log.Error("failed to create project",
			slog.String("error", err.Error()),
			slog.String("name", project.Name))
		return MapError(err)
	}

	if err := replaceLinks(ctx, s.db, "project_users", "project_id", "user_id", project.ID, project.UserIDs); err != nil {
		log.Warn("failed to save project members",
			slog.String("error", err.Error()),
			slog.Int64("project_id", project.ID))
		return MapError(err)
	}

	log.Info("project created successfully",
		slog.Int64("project_id", project.ID),
		slog.Int("members", len(project.UserIDs)))
	return nil
}

// GetByID implements store.ProjectStore.GetByID
func (s *PostgresProjectStore) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Select(projectColumns...).From("projects").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building project query: %w", err)
	}

	project, err := scanProject(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug("project not found", slog.Int64("project_id", id))
			return nil, store.ErrProjectNotFound
		}
		log.Error("failed to get project by ID",
			slog.String("error", err.Error()),
			slog.Int64("project_id", id))
		return nil, MapError(err)
	}

	if err := loadProjectMembers(ctx, s.db, []*domain.Project{project}); err != nil {
		log.Error("failed to load project members",
			slog.String("error", err.Error()),
			slog.Int64("project_id", id))
		return nil, MapError(err)
	}
	return project, nil
}

// List implements store.ProjectStore.List
func (s *PostgresProjectStore) List(ctx context.Context, filter store.ProjectFilter, page store.Page) ([]*domain.Project, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	preds := projectPredicates(filter)

	countSQL, countArgs, err := whereAll(psql.Select("COUNT(*)").From("projects"), preds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building project count query: %w", err)
	}
	var total int
	if err := s.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Error("failed to count projects", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	query, args, err := withPage(whereAll(psql.Select(projectColumns...).From("projects"), preds), page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("building project list query: %w", err)
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		log.Error("failed to list projects", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	projects := []*domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, MapError(err)
	}

	if err := loadProjectMembers(ctx, s.db, projects); err != nil {
		log.Error("failed to load project members", slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}
	return projects, total, nil
}

// Update implements store.ProjectStore.Update
func (s *PostgresProjectStore) Update(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.Warn("project validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("project_id", project.ID))
		return err
	}
	project.Updated = time.Now().UTC()

	tag, err := s.db.Exec(ctx, `
		UPDATE projects
		SET name = $1, repository = $2, updated = $3
		WHERE id = $4
	`, project.Name, project.Repository, project.Updated, project.ID)
	if err != nil {
		log.Error("failed to update project",
			slog.String("error", err.Error()),
			slog.Int64("project_id", project.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(tag, store.ErrProjectNotFound); err != nil {
		return err
	}

	if err := replaceLinks(ctx, s.db, "project_users", "project_id", "user_id", project.ID, project.UserIDs); err != nil {
		log.Warn("failed to save project members",
			slog.String("error", err.Error()),
			slog.Int64("project_id", project.ID))
		return MapError(err)
	}

	log.Info("project updated successfully", slog.Int64("project_id", project.ID))
	return nil
}

// Delete implements store.ProjectStore.Delete
// Todos and memberships go with the project through ON DELETE CASCADE.
func (s *PostgresProjectStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tag, err := s.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete project",
			slog.String("error", err.Error()),
			slog.Int64("project_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(tag, store.ErrProjectNotFound); err != nil {
		return err
	}

	log.Info("project deleted successfully", slog.Int64("project_id", id))
	return nil
}
