package mocks

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/mock"
)

var (
	_ store.UserStore    = (*UserStore)(nil)
	_ store.ProjectStore = (*ProjectStore)(nil)
	_ store.TodoStore    = (*TodoStore)(nil)
	_ store.GroupStore   = (*GroupStore)(nil)
)

// UserStore is a mock of store.UserStore for use with testify/mock.
// WithTx returns the mock itself, so expectations hold inside transactions.
type UserStore struct {
	mock.Mock
}

// Create is a mock implementation of store.UserStore.Create
func (m *UserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *UserStore) GetByID(ctx context.Context, id int64, vis domain.Visibility) (*domain.User, error) {
	args := m.Called(ctx, id, vis)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByUsername is a mock implementation of store.UserStore.GetByUsername
func (m *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.UserStore.List
func (m *UserStore) List(ctx context.Context, filter store.UserFilter, page store.Page) ([]*domain.User, int, error) {
	args := m.Called(ctx, filter, page)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Int(1), args.Error(2)
}

// ListSuperusers is a mock implementation of store.UserStore.ListSuperusers
func (m *UserStore) ListSuperusers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*domain.User)
	return users, args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *UserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// SetLifecycle is a mock implementation of store.UserStore.SetLifecycle
func (m *UserStore) SetLifecycle(ctx context.Context, id int64, lifecycle domain.Lifecycle) error {
	args := m.Called(ctx, id, lifecycle)
	return args.Error(0)
}

// LoadRelations is a mock implementation of store.UserStore.LoadRelations
func (m *UserStore) LoadRelations(ctx context.Context, users []*domain.User) error {
	args := m.Called(ctx, users)
	return args.Error(0)
}

// WithTx is a mock implementation of store.UserStore.WithTx
func (m *UserStore) WithTx(store.DBTX) store.UserStore {
	return m
}

// ProjectStore is a mock of store.ProjectStore for use with testify/mock.
type ProjectStore struct {
	mock.Mock
}

// Create is a mock implementation of store.ProjectStore.Create
func (m *ProjectStore) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// GetByID is a mock implementation of store.ProjectStore.GetByID
func (m *ProjectStore) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if project, ok := args.Get(0).(*domain.Project); ok {
		return project, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.ProjectStore.List
func (m *ProjectStore) List(
	ctx context.Context,
	filter store.ProjectFilter,
	page store.Page,
) ([]*domain.Project, int, error) {
	args := m.Called(ctx, filter, page)
	projects, _ := args.Get(0).([]*domain.Project)
	return projects, args.Int(1), args.Error(2)
}

// Update is a mock implementation of store.ProjectStore.Update
func (m *ProjectStore) Update(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// Delete is a mock implementation of store.ProjectStore.Delete
func (m *ProjectStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx is a mock implementation of store.ProjectStore.WithTx
func (m *ProjectStore) WithTx(store.DBTX) store.ProjectStore {
	return m
}

// TodoStore is a mock of store.TodoStore for use with testify/mock.
type TodoStore struct {
	mock.Mock
}

// Create is a mock implementation of store.TodoStore.Create
func (m *TodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

// GetByID is a mock implementation of store.TodoStore.GetByID
func (m *TodoStore) GetByID(ctx context.Context, id int64, vis domain.Visibility) (*domain.Todo, error) {
	args := m.Called(ctx, id, vis)
	if todo, ok := args.Get(0).(*domain.Todo); ok {
		return todo, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.TodoStore.List
func (m *TodoStore) List(ctx context.Context, filter store.TodoFilter, page store.Page) ([]*domain.Todo, int, error) {
	args := m.Called(ctx, filter, page)
	todos, _ := args.Get(0).([]*domain.Todo)
	return todos, args.Int(1), args.Error(2)
}

// Update is a mock implementation of store.TodoStore.Update
func (m *TodoStore) Update(ctx context.Context, todo *domain.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

// SetLifecycle is a mock implementation of store.TodoStore.SetLifecycle
func (m *TodoStore) SetLifecycle(ctx context.Context, id int64, lifecycle domain.Lifecycle) error {
	args := m.Called(ctx, id, lifecycle)
	return args.Error(0)
}

// GroupStore is a mock of store.GroupStore for use with testify/mock.
type GroupStore struct {
	mock.Mock
}

// GetByID is a mock implementation of store.GroupStore.GetByID
func (m *GroupStore) GetByID(ctx context.Context, id int64) (*domain.PermissionGroup, error) {
	args := m.Called(ctx, id)
	if group, ok := args.Get(0).(*domain.PermissionGroup); ok {
		return group, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.GroupStore.List
func (m *GroupStore) List(ctx context.Context, page store.Page) ([]*domain.PermissionGroup, int, error) {
	args := m.Called(ctx, page)
	groups, _ := args.Get(0).([]*domain.PermissionGroup)
	return groups, args.Int(1), args.Error(2)
}

// LoadMembers is a mock implementation of store.GroupStore.LoadMembers
func (m *GroupStore) LoadMembers(ctx context.Context, groups []*domain.PermissionGroup) error {
	args := m.Called(ctx, groups)
	return args.Error(0)
}
