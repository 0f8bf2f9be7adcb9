package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/mocks"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGroupService_ExpandsMembers(t *testing.T) {
	t.Parallel()

	groups := new(mocks.GroupStore)
	users := new(mocks.UserStore)
	svc := service.NewGroupService(groups, users, nil)

	admin := &domain.PermissionGroup{ID: 1, Role: "administrator"}
	dev := &domain.PermissionGroup{ID: 2, Role: "developer"}
	page := store.Page{Limit: 10}

	groups.On("List", mock.Anything, page).Return([]*domain.PermissionGroup{admin, dev}, 2, nil)
	groups.On("LoadMembers", mock.Anything, []*domain.PermissionGroup{admin, dev}).
		Run(func(mock.Arguments) {
			admin.Users = []domain.User{{ID: 1}, {ID: 2}}
			dev.Users = []domain.User{{ID: 3}}
		}).Return(nil)
	users.On("LoadRelations", mock.Anything, mock.MatchedBy(func(us []*domain.User) bool {
		return len(us) == 3 && us[0] == &admin.Users[0] && us[2] == &dev.Users[0]
	})).Return(nil)

	got, total, err := svc.List(context.Background(), page)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, got[0].Users, 2)
	groups.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestGroupService_GetNotFound(t *testing.T) {
	t.Parallel()

	groups := new(mocks.GroupStore)
	svc := service.NewGroupService(groups, new(mocks.UserStore), nil)
	groups.On("GetByID", mock.Anything, int64(99)).Return(nil, store.ErrGroupNotFound)

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGroupService_MemberOfSeveralGroups(t *testing.T) {
	t.Parallel()

	groups := new(mocks.GroupStore)
	users := new(mocks.UserStore)
	svc := service.NewGroupService(groups, users, nil)

	admin := &domain.PermissionGroup{ID: 1, Role: "administrator"}
	dev := &domain.PermissionGroup{ID: 2, Role: "developer"}
	page := store.Page{Limit: 10}

	groups.On("List", mock.Anything, page).Return([]*domain.PermissionGroup{admin, dev}, 2, nil)
	groups.On("LoadMembers", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			admin.Users = []domain.User{{ID: 5}}
			dev.Users = []domain.User{{ID: 5}}
		}).Return(nil)
	users.On("LoadRelations", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			for _, u := range args.Get(1).([]*domain.User) {
				u.RoleIDs = []int64{1, 2}
			}
		}).Return(nil)

	got, _, err := svc.List(context.Background(), page)
	require.NoError(t, err)
	for _, g := range got {
		require.Len(t, g.Users, 1, g.Role)
		assert.Equal(t, []int64{1, 2}, g.Users[0].RoleIDs, g.Role)
	}
}
