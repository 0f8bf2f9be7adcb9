package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/todo-api/internal/authz"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/mocks"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_ListForcesActiveScope(t *testing.T) {
	t.Parallel()

	users := new(mocks.UserStore)
	svc := service.NewUserService(users, newMockPool(t), &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

	page := store.Page{Limit: 10}
	want := store.UserFilter{Visibility: domain.VisibleActive, Email: "ali@example.com"}
	result := []*domain.User{activeUser(1)}
	users.On("List", mock.Anything, want, page).Return(result, 1, nil)
	users.On("LoadRelations", mock.Anything, result).Return(nil)

	got, total, err := svc.List(context.Background(), store.UserFilter{Visibility: domain.VisibleAll, Email: "ali@example.com"}, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, result, got)
	users.AssertExpectations(t)
}

func TestUserService_ListLoginSearchIgnoresLifecycle(t *testing.T) {
	t.Parallel()

	for _, login := range []string{"adm", ""} {
		users := new(mocks.UserStore)
		svc := service.NewUserService(users, newMockPool(t), &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

		page := store.Page{Limit: 10}
		inactive := activeUser(2)
		inactive.Username = "admin2"
		inactive.Lifecycle = domain.Inactive
		result := []*domain.User{activeUser(1), inactive}

		want := store.UserFilter{Visibility: domain.VisibleAll, Login: ptr(login)}
		users.On("List", mock.Anything, want, page).Return(result, 2, nil)
		users.On("LoadRelations", mock.Anything, result).Return(nil)

		got, total, err := svc.List(context.Background(), store.UserFilter{Login: ptr(login)}, page)
		require.NoError(t, err, login)
		assert.Equal(t, 2, total)
		assert.Equal(t, result, got)
		users.AssertExpectations(t)
	}
}

func TestUserService_GetHidesInactive(t *testing.T) {
	t.Parallel()

	users := new(mocks.UserStore)
	svc := service.NewUserService(users, newMockPool(t), &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

	users.On("GetByID", mock.Anything, int64(4), domain.VisibleActive).Return(nil, store.ErrUserNotFound)

	_, err := svc.Get(context.Background(), 4)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserService_Create(t *testing.T) {
	t.Parallel()

	t.Run("superuser creates user in a transaction", func(t *testing.T) {
		t.Parallel()
		pool := newMockPool(t)
		users := new(mocks.UserStore)
		hasher := &mocks.MockPasswordHasher{}
		svc := service.NewUserService(users, pool, hasher, authz.DefaultPolicy{}, nil)

		pool.ExpectBegin()
		pool.ExpectCommit()
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "alice" &&
				u.PasswordHash == "hashed:correct-horse" &&
				u.Password == "" &&
				u.IsActive() &&
				assert.ObjectsAreEqual([]int64{2}, u.RoleIDs)
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 11
		}).Return(nil)

		created, err := svc.Create(context.Background(), superuser(1), service.UserInput{
			Username: ptr("alice"),
			Password: ptr("correct-horse"),
			Roles:    ptr([]int64{2}),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(11), created.ID)
		assert.Equal(t, []int64{}, created.ProjectIDs)
		assert.Equal(t, []string{"correct-horse"}, hasher.Hashed)
		users.AssertExpectations(t)
	})

	t.Run("regular user is denied", func(t *testing.T) {
		t.Parallel()
		users := new(mocks.UserStore)
		svc := service.NewUserService(users, newMockPool(t), &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

		_, err := svc.Create(context.Background(), activeUser(2), service.UserInput{Username: ptr("bob")})
		assert.ErrorIs(t, err, authz.ErrPermissionDenied)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("anonymous caller is not authenticated", func(t *testing.T) {
		t.Parallel()
		svc := service.NewUserService(new(mocks.UserStore), newMockPool(t), &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

		_, err := svc.Create(context.Background(), nil, service.UserInput{Username: ptr("bob")})
		assert.ErrorIs(t, err, authz.ErrNotAuthenticated)
	})

	t.Run("short password is a validation error", func(t *testing.T) {
		t.Parallel()
		svc := service.NewUserService(new(mocks.UserStore), newMockPool(t), &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

		_, err := svc.Create(context.Background(), superuser(1), service.UserInput{
			Username: ptr("bob"),
			Password: ptr("short"),
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("duplicate username surfaces store error", func(t *testing.T) {
		t.Parallel()
		pool := newMockPool(t)
		users := new(mocks.UserStore)
		svc := service.NewUserService(users, pool, &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

		pool.ExpectBegin()
		pool.ExpectRollback()
		users.On("Create", mock.Anything, mock.Anything).Return(store.ErrUsernameExists)

		_, err := svc.Create(context.Background(), superuser(1), service.UserInput{Username: ptr("alice")})
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})
}

func TestUserService_Update(t *testing.T) {
	t.Parallel()

	birthdate := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)
	stored := func() *domain.User {
		u := activeUser(5)
		u.Username = "carol"
		u.FirstName = "Carol"
		u.MiddleName = "Ann"
		u.LastName = "Jones"
		u.Birthdate = &birthdate
		u.RoleIDs = []int64{3}
		return u
	}

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		t.Parallel()
		pool := newMockPool(t)
		users := new(mocks.UserStore)
		svc := service.NewUserService(users, pool, &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

		pool.ExpectBegin()
		pool.ExpectCommit()
		users.On("GetByID", mock.Anything, int64(5), domain.VisibleActive).Return(stored(), nil)
		users.On("LoadRelations", mock.Anything, mock.Anything).Return(nil)
		users.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := svc.Update(context.Background(), activeUser(5), 5, service.UserInput{LastName: ptr("Smith")}, true)
		require.NoError(t, err)
		assert.Equal(t, "carol", got.Username)
		assert.Equal(t, "Ann", got.MiddleName)
		assert.Equal(t, "Smith", got.LastName)
		assert.Equal(t, &birthdate, got.Birthdate)
		assert.Equal(t, []int64{3}, got.RoleIDs)
		assert.Empty(t, got.PasswordHash)
	})

	t.Run("full update resets omitted optional fields", func(t *testing.T) {
		t.Parallel()
		pool := newMockPool(t)
		users := new(mocks.UserStore)
		svc := service.NewUserService(users, pool, &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

		pool.ExpectBegin()
		pool.ExpectCommit()
		users.On("GetByID", mock.Anything, int64(5), domain.VisibleActive).Return(stored(), nil)
		users.On("LoadRelations", mock.Anything, mock.Anything).Return(nil)
		users.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := svc.Update(context.Background(), superuser(1), 5, service.UserInput{Username: ptr("carol")}, false)
		require.NoError(t, err)
		assert.Empty(t, got.MiddleName)
		assert.Nil(t, got.Birthdate)
		assert.Equal(t, []int64{}, got.RoleIDs)
	})

	t.Run("full update requires username", func(t *testing.T) {
		t.Parallel()
		svc := service.NewUserService(new(mocks.UserStore), newMockPool(t), &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

		_, err := svc.Update(context.Background(), superuser(1), 5, service.UserInput{}, false)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("user cannot grant themselves superuser", func(t *testing.T) {
		t.Parallel()
		pool := newMockPool(t)
		users := new(mocks.UserStore)
		svc := service.NewUserService(users, pool, &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

		pool.ExpectBegin()
		pool.ExpectRollback()
		users.On("GetByID", mock.Anything, int64(5), domain.VisibleActive).Return(stored(), nil)
		users.On("LoadRelations", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Update(context.Background(), activeUser(5), 5, service.UserInput{IsSuperuser: ptr(true)}, true)
		assert.ErrorIs(t, err, authz.ErrPermissionDenied)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("other users are read-only", func(t *testing.T) {
		t.Parallel()
		pool := newMockPool(t)
		users := new(mocks.UserStore)
		svc := service.NewUserService(users, pool, &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

		pool.ExpectBegin()
		pool.ExpectRollback()
		users.On("GetByID", mock.Anything, int64(5), domain.VisibleActive).Return(stored(), nil)
		users.On("LoadRelations", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Update(context.Background(), activeUser(6), 5, service.UserInput{LastName: ptr("X")}, true)
		assert.ErrorIs(t, err, authz.ErrPermissionDenied)
	})
}

func TestUserService_DestroyIsSoftAndIdempotent(t *testing.T) {
	t.Parallel()

	for _, lifecycle := range []domain.Lifecycle{domain.Active, domain.Inactive} {
		t.Run(lifecycle.String(), func(t *testing.T) {
			t.Parallel()
			users := new(mocks.UserStore)
			svc := service.NewUserService(users, newMockPool(t), &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

			target := activeUser(7)
			target.Lifecycle = lifecycle
			users.On("GetByID", mock.Anything, int64(7), domain.VisibleAll).Return(target, nil)
			users.On("SetLifecycle", mock.Anything, int64(7), domain.Inactive).Return(nil)

			require.NoError(t, svc.Destroy(context.Background(), superuser(1), 7))
			users.AssertExpectations(t)
		})
	}
}

func TestUserService_DestroyRequiresAuthentication(t *testing.T) {
	t.Parallel()

	users := new(mocks.UserStore)
	svc := service.NewUserService(users, newMockPool(t), &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)
	users.On("GetByID", mock.Anything, int64(7), domain.VisibleAll).Return(activeUser(7), nil)

	err := svc.Destroy(context.Background(), nil, 7)
	assert.ErrorIs(t, err, authz.ErrNotAuthenticated)
	users.AssertNotCalled(t, "SetLifecycle", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Helpers(t *testing.T) {
	t.Parallel()

	users := new(mocks.UserStore)
	svc := service.NewUserService(users, newMockPool(t), &mocks.MockPasswordHasher{}, authz.DefaultPolicy{}, nil)

	inactive := activeUser(8)
	inactive.Username = "dave"
	inactive.FirstName = "Dave"
	inactive.LastName = "Brown"
	inactive.Lifecycle = domain.Inactive
	users.On("GetByID", mock.Anything, int64(8), domain.VisibleAll).Return(inactive, nil)

	login, err := svc.Login(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, "dave", login)

	fio, err := svc.FullName(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, "Dave Brown", fio)

	supers := []*domain.User{superuser(1), superuser(2)}
	supers[1].Lifecycle = domain.Inactive
	users.On("ListSuperusers", mock.Anything).Return(supers, nil)
	users.On("LoadRelations", mock.Anything, supers).Return(nil)

	got, err := svc.Superusers(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
