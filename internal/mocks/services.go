package mocks

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
)

var (
	_ service.UserService    = (*MockUserService)(nil)
	_ service.ProjectService = (*MockProjectService)(nil)
	_ service.TodoService    = (*MockTodoService)(nil)
	_ service.GroupService   = (*MockGroupService)(nil)
	_ service.TokenService   = (*MockTokenService)(nil)
)

// MockUserService implements service.UserService for testing.
// Unset functions return DefaultError.
type MockUserService struct {
	ListFn       func(ctx context.Context, filter store.UserFilter, page store.Page) ([]*domain.User, int, error)
	GetFn        func(ctx context.Context, id int64) (*domain.User, error)
	CreateFn     func(ctx context.Context, principal *domain.User, in service.UserInput) (*domain.User, error)
	UpdateFn     func(ctx context.Context, principal *domain.User, id int64, in service.UserInput, partial bool) (*domain.User, error)
	DestroyFn    func(ctx context.Context, principal *domain.User, id int64) error
	SuperusersFn func(ctx context.Context) ([]*domain.User, error)
	LoginFn      func(ctx context.Context, id int64) (string, error)
	FullNameFn   func(ctx context.Context, id int64) (string, error)

	DefaultError error
}

// List implements service.UserService
func (m *MockUserService) List(ctx context.Context, filter store.UserFilter, page store.Page) ([]*domain.User, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}
	return nil, 0, m.DefaultError
}

// Get implements service.UserService
func (m *MockUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.DefaultError
}

// Create implements service.UserService
func (m *MockUserService) Create(ctx context.Context, principal *domain.User, in service.UserInput) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, principal, in)
	}
	return nil, m.DefaultError
}

// Update implements service.UserService
func (m *MockUserService) Update(
	ctx context.Context,
	principal *domain.User,
	id int64,
	in service.UserInput,
	partial bool,
) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, principal, id, in, partial)
	}
	return nil, m.DefaultError
}

// Destroy implements service.UserService
func (m *MockUserService) Destroy(ctx context.Context, principal *domain.User, id int64) error {
	if m.DestroyFn != nil {
		return m.DestroyFn(ctx, principal, id)
	}
	return m.DefaultError
}

// Superusers implements service.UserService
func (m *MockUserService) Superusers(ctx context.Context) ([]*domain.User, error) {
	if m.SuperusersFn != nil {
		return m.SuperusersFn(ctx)
	}
	return nil, m.DefaultError
}

// Login implements service.UserService
func (m *MockUserService) Login(ctx context.Context, id int64) (string, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, id)
	}
	return "", m.DefaultError
}

// FullName implements service.UserService
func (m *MockUserService) FullName(ctx context.Context, id int64) (string, error) {
	if m.FullNameFn != nil {
		return m.FullNameFn(ctx, id)
	}
	return "", m.DefaultError
}

// MockProjectService implements service.ProjectService for testing.
type MockProjectService struct {
	ListFn    func(ctx context.Context, filter store.ProjectFilter, page store.Page) ([]*domain.Project, int, error)
	GetFn     func(ctx context.Context, id int64) (*domain.Project, error)
	CreateFn  func(ctx context.Context, principal *domain.User, in service.ProjectInput) (*domain.Project, error)
	UpdateFn  func(ctx context.Context, principal *domain.User, id int64, in service.ProjectInput, partial bool) (*domain.Project, error)
	DestroyFn func(ctx context.Context, principal *domain.User, id int64) error

	DefaultError error
}

// List implements service.ProjectService
func (m *MockProjectService) List(
	ctx context.Context,
	filter store.ProjectFilter,
	page store.Page,
) ([]*domain.Project, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}
	return nil, 0, m.DefaultError
}

// Get implements service.ProjectService
func (m *MockProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.DefaultError
}

// Create implements service.ProjectService
func (m *MockProjectService) Create(
	ctx context.Context,
	principal *domain.User,
	in service.ProjectInput,
) (*domain.Project, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, principal, in)
	}
	return nil, m.DefaultError
}

// Update implements service.ProjectService
func (m *MockProjectService) Update(
	ctx context.Context,
	principal *domain.User,
	id int64,
	in service.ProjectInput,
	partial bool,
) (*domain.Project, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, principal, id, in, partial)
	}
	return nil, m.DefaultError
}

// Destroy implements service.ProjectService
func (m *MockProjectService) Destroy(ctx context.Context, principal *domain.User, id int64) error {
	if m.DestroyFn != nil {
		return m.DestroyFn(ctx, principal, id)
	}
	return m.DefaultError
}

// MockTodoService implements service.TodoService for testing.
type MockTodoService struct {
	ListFn    func(ctx context.Context, filter store.TodoFilter, page store.Page) ([]*domain.Todo, int, error)
	GetFn     func(ctx context.Context, id int64) (*domain.Todo, error)
	CreateFn  func(ctx context.Context, principal *domain.User, in service.TodoInput) (*domain.Todo, error)
	UpdateFn  func(ctx context.Context, principal *domain.User, id int64, in service.TodoInput, partial bool) (*domain.Todo, error)
	DestroyFn func(ctx context.Context, principal *domain.User, id int64) error

	DefaultError error
}

// List implements service.TodoService
func (m *MockTodoService) List(ctx context.Context, filter store.TodoFilter, page store.Page) ([]*domain.Todo, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter, page)
	}
	return nil, 0, m.DefaultError
}

// Get implements service.TodoService
func (m *MockTodoService) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.DefaultError
}

// Create implements service.TodoService
func (m *MockTodoService) Create(ctx context.Context, principal *domain.User, in service.TodoInput) (*domain.Todo, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, principal, in)
	}
	return nil, m.DefaultError
}

// Update implements service.TodoService
func (m *MockTodoService) Update(
	ctx context.Context,
	principal *domain.User,
	id int64,
	in service.TodoInput,
	partial bool,
) (*domain.Todo, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, principal, id, in, partial)
	}
	return nil, m.DefaultError
}

// Destroy implements service.TodoService
func (m *MockTodoService) Destroy(ctx context.Context, principal *domain.User, id int64) error {
	if m.DestroyFn != nil {
		return m.DestroyFn(ctx, principal, id)
	}
	return m.DefaultError
}

// MockGroupService implements service.GroupService for testing.
type MockGroupService struct {
	ListFn func(ctx context.Context, page store.Page) ([]*domain.PermissionGroup, int, error)
	GetFn  func(ctx context.Context, id int64) (*domain.PermissionGroup, error)

	DefaultError error
}

// List implements service.GroupService
func (m *MockGroupService) List(ctx context.Context, page store.Page) ([]*domain.PermissionGroup, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return nil, 0, m.DefaultError
}

// Get implements service.GroupService
func (m *MockGroupService) Get(ctx context.Context, id int64) (*domain.PermissionGroup, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, m.DefaultError
}

// MockTokenService implements service.TokenService for testing.
// Without AuthenticateFn, Authenticate resolves any token to Principal.
type MockTokenService struct {
	ObtainFn       func(ctx context.Context, username, password string) (*service.TokenPair, error)
	RefreshFn      func(ctx context.Context, refreshToken string) (*service.TokenPair, error)
	AuthenticateFn func(ctx context.Context, accessToken string) (*domain.User, error)

	Principal    *domain.User
	DefaultError error
}

// Obtain implements service.TokenService
func (m *MockTokenService) Obtain(ctx context.Context, username, password string) (*service.TokenPair, error) {
	if m.ObtainFn != nil {
		return m.ObtainFn(ctx, username, password)
	}
	return nil, m.DefaultError
}

// Refresh implements service.TokenService
func (m *MockTokenService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	if m.RefreshFn != nil {
		return m.RefreshFn(ctx, refreshToken)
	}
	return nil, m.DefaultError
}

// Authenticate implements service.TokenService
func (m *MockTokenService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, accessToken)
	}
	return m.Principal, m.DefaultError
}
