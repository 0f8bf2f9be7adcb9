package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// GroupService provides read access to permission groups in their expanded
// form: permissions plus member users with the members' own relations.
type GroupService interface {
	List(ctx context.Context, page store.Page) ([]*domain.PermissionGroup, int, error)
	Get(ctx context.Context, id int64) (*domain.PermissionGroup, error)
}

// GroupServiceImpl implements the GroupService interface
type GroupServiceImpl struct {
	groupStore store.GroupStore
	userStore  store.UserStore
	logger     *slog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(groupStore store.GroupStore, userStore store.UserStore, logger *slog.Logger) GroupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupServiceImpl{
		groupStore: groupStore,
		userStore:  userStore,
		logger:     logger.With("component", "group_service"),
	}
}

// List implements GroupService.List
func (s *GroupServiceImpl) List(ctx context.Context, page store.Page) ([]*domain.PermissionGroup, int, error) {
	groups, total, err := s.groupStore.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}
	if err := s.expand(ctx, groups); err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// Get implements GroupService.Get
func (s *GroupServiceImpl) Get(ctx context.Context, id int64) (*domain.PermissionGroup, error) {
	group, err := s.groupStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve group: %w", err)
	}
	if err := s.expand(ctx, []*domain.PermissionGroup{group}); err != nil {
		return nil, err
	}
	return group, nil
}

// expand loads members for all groups, then the members' relations, with a
// fixed number of queries independent of the group count.
func (s *GroupServiceImpl) expand(ctx context.Context, groups []*domain.PermissionGroup) error {
	if err := s.groupStore.LoadMembers(ctx, groups); err != nil {
		return fmt.Errorf("failed to load group members: %w", err)
	}

	var members []*domain.User
	for _, g := range groups {
		for i := range g.Users {
			members = append(members, &g.Users[i])
		}
	}
	if err := s.userStore.LoadRelations(ctx, members); err != nil {
		return fmt.Errorf("failed to load member relations: %w", err)
	}

	s.logger.Debug("groups expanded",
		"groups", len(groups),
		"members", len(members))
	return nil
}
