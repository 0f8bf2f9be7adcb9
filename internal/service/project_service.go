package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/phrazzld/todo-api/internal/authz"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// ProjectService provides the project resource operations.
type ProjectService interface {
	List(ctx context.Context, filter store.ProjectFilter, page store.Page) ([]*domain.Project, int, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, principal *domain.User, in ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, principal *domain.User, id int64, in ProjectInput, partial bool) (*domain.Project, error)

	// Destroy removes the project and its todos.
	Destroy(ctx context.Context, principal *domain.User, id int64) error
}

// ProjectServiceImpl implements the ProjectService interface
type ProjectServiceImpl struct {
	projectStore store.ProjectStore
	db           store.TxBeginner
	authorizer   authz.Authorizer
	logger       *slog.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectStore store.ProjectStore,
	db store.TxBeginner,
	authorizer authz.Authorizer,
	logger *slog.Logger,
) ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectServiceImpl{
		projectStore: projectStore,
		db:           db,
		authorizer:   authorizer,
		logger:       logger.With("component", "project_service"),
	}
}

// List implements ProjectService.List
func (s *ProjectServiceImpl) List(ctx context.Context, filter store.ProjectFilter, page store.Page) ([]*domain.Project, int, error) {
	projects, total, err := s.projectStore.List(ctx, filter, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Get implements ProjectService.Get
func (s *ProjectServiceImpl) Get(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.projectStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve project: %w", err)
	}
	return project, nil
}

// Create implements ProjectService.Create
func (s *ProjectServiceImpl) Create(ctx context.Context, principal *domain.User, in ProjectInput) (*domain.Project, error) {
	if err := s.authorizer.Authorize(ctx, principal, authz.ResourceProject, authz.ActionCreate, nil); err != nil {
		return nil, err
	}

	project, err := domain.NewProject(
		pick(in.Name, "", false),
		pick(in.Repository, "", false),
		memberIDs(in.Users, nil, false),
	)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		return s.projectStore.WithTx(tx).Create(ctx, project)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created successfully",
		"project_id", project.ID,
		"members", len(project.UserIDs))
	return project, nil
}

// Update implements ProjectService.Update
func (s *ProjectServiceImpl) Update(
	ctx context.Context,
	principal *domain.User,
	id int64,
	in ProjectInput,
	partial bool,
) (*domain.Project, error) {
	var updated *domain.Project
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		txStore := s.projectStore.WithTx(tx)

		project, err := txStore.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to retrieve project for update: %w", err)
		}
		if err := s.authorizer.Authorize(ctx, principal, authz.ResourceProject, authz.ActionUpdate, project); err != nil {
			return err
		}

		project.Name = strings.TrimSpace(pick(in.Name, project.Name, partial))
		project.Repository = strings.TrimSpace(pick(in.Repository, project.Repository, partial))
		project.UserIDs = memberIDs(in.Users, project.UserIDs, partial)
		if err := project.Validate(); err != nil {
			return err
		}

		if err := txStore.Update(ctx, project); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project updated successfully",
		"project_id", id,
		"partial", partial)
	return updated, nil
}

// Destroy implements ProjectService.Destroy
func (s *ProjectServiceImpl) Destroy(ctx context.Context, principal *domain.User, id int64) error {
	project, err := s.projectStore.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to retrieve project for deletion: %w", err)
	}
	if err := s.authorizer.Authorize(ctx, principal, authz.ResourceProject, authz.ActionDestroy, project); err != nil {
		return err
	}
	if err := s.projectStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.logger.Info("project deleted", "project_id", id)
	return nil
}

func memberIDs(in *[]int64, current []int64, partial bool) []int64 {
	ids := pick(in, current, partial)
	if ids == nil {
		return []int64{}
	}
	return ids
}
