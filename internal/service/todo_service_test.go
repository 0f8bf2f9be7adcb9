package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/todo-api/internal/authz"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/mocks"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTodoService_ReadsSeeOnlyActive(t *testing.T) {
	t.Parallel()

	todos := new(mocks.TodoStore)
	svc := service.NewTodoService(todos, authz.DefaultPolicy{}, nil)

	page := store.Page{Limit: 20, Offset: 40}
	todos.On("List", mock.Anything, store.TodoFilter{Visibility: domain.VisibleActive, ProjectID: 2}, page).
		Return([]*domain.Todo{}, 0, nil)
	todos.On("GetByID", mock.Anything, int64(9), domain.VisibleActive).Return(nil, store.ErrTodoNotFound)

	_, _, err := svc.List(context.Background(), store.TodoFilter{Visibility: domain.VisibleAll, ProjectID: 2}, page)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, store.ErrNotFound)
	todos.AssertExpectations(t)
}

func TestTodoService_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		principal  *domain.User
		in         service.TodoInput
		wantAuthor int64
		wantErr    error
	}{
		{
			name:       "author defaults to caller",
			principal:  activeUser(4),
			in:         service.TodoInput{Project: ptr(int64(1)), Text: ptr("write docs")},
			wantAuthor: 4,
		},
		{
			name:       "caller may name themselves",
			principal:  activeUser(4),
			in:         service.TodoInput{Project: ptr(int64(1)), User: ptr(int64(4)), Text: ptr("x")},
			wantAuthor: 4,
		},
		{
			name:      "caller may not name someone else",
			principal: activeUser(4),
			in:        service.TodoInput{Project: ptr(int64(1)), User: ptr(int64(5)), Text: ptr("x")},
			wantErr:   service.ErrAuthorChange,
		},
		{
			name:       "superuser may name anyone",
			principal:  superuser(1),
			in:         service.TodoInput{Project: ptr(int64(1)), User: ptr(int64(5)), Text: ptr("x")},
			wantAuthor: 5,
		},
		{
			name:      "text is required",
			principal: activeUser(4),
			in:        service.TodoInput{Project: ptr(int64(1)), Text: ptr("  ")},
			wantErr:   domain.ErrValidation,
		},
		{
			name:      "anonymous is rejected",
			principal: nil,
			in:        service.TodoInput{Project: ptr(int64(1)), Text: ptr("x")},
			wantErr:   authz.ErrNotAuthenticated,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			todos := new(mocks.TodoStore)
			svc := service.NewTodoService(todos, authz.DefaultPolicy{}, nil)
			todos.On("Create", mock.Anything, mock.Anything).Return(nil)

			got, err := svc.Create(context.Background(), tc.principal, tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				todos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantAuthor, got.UserID)
			assert.True(t, got.IsActive())
		})
	}
}

func TestTodoService_Update(t *testing.T) {
	t.Parallel()

	stored := func() *domain.Todo {
		return &domain.Todo{ID: 6, ProjectID: 1, UserID: 4, Text: "old", Lifecycle: domain.Active}
	}

	t.Run("author edits text", func(t *testing.T) {
		t.Parallel()
		todos := new(mocks.TodoStore)
		svc := service.NewTodoService(todos, authz.DefaultPolicy{}, nil)
		todos.On("GetByID", mock.Anything, int64(6), domain.VisibleActive).Return(stored(), nil)
		todos.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := svc.Update(context.Background(), activeUser(4), 6, service.TodoInput{Text: ptr("new")}, true)
		require.NoError(t, err)
		assert.Equal(t, "new", got.Text)
		assert.Equal(t, int64(1), got.ProjectID)
	})

	t.Run("full update without project fails validation", func(t *testing.T) {
		t.Parallel()
		todos := new(mocks.TodoStore)
		svc := service.NewTodoService(todos, authz.DefaultPolicy{}, nil)
		todos.On("GetByID", mock.Anything, int64(6), domain.VisibleActive).Return(stored(), nil)

		_, err := svc.Update(context.Background(), activeUser(4), 6, service.TodoInput{Text: ptr("new")}, false)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("other users are denied", func(t *testing.T) {
		t.Parallel()
		todos := new(mocks.TodoStore)
		svc := service.NewTodoService(todos, authz.DefaultPolicy{}, nil)
		todos.On("GetByID", mock.Anything, int64(6), domain.VisibleActive).Return(stored(), nil)

		_, err := svc.Update(context.Background(), activeUser(5), 6, service.TodoInput{Text: ptr("new")}, true)
		assert.ErrorIs(t, err, authz.ErrPermissionDenied)
	})
}

func TestTodoService_DestroyIsSoftAndIdempotent(t *testing.T) {
	t.Parallel()

	todos := new(mocks.TodoStore)
	svc := service.NewTodoService(todos, authz.DefaultPolicy{}, nil)

	todo := &domain.Todo{ID: 6, ProjectID: 1, UserID: 4, Text: "x", Lifecycle: domain.Active}
	todos.On("GetByID", mock.Anything, int64(6), domain.VisibleAll).Return(todo, nil)
	todos.On("SetLifecycle", mock.Anything, int64(6), domain.Inactive).Return(nil)

	require.NoError(t, svc.Destroy(context.Background(), activeUser(4), 6))
	assert.False(t, todo.IsActive())

	// The second call finds the inactive todo and succeeds again.
	require.NoError(t, svc.Destroy(context.Background(), activeUser(4), 6))
	todos.AssertNumberOfCalls(t, "SetLifecycle", 2)
}
