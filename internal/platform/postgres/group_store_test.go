package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupStore_GetByID(t *testing.T) {
	mock := newMockPool(t)
	s := postgres.NewPostgresGroupStore(mock, nil)

	mock.ExpectQuery(`SELECT id, role FROM permission_groups WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "role"}).AddRow(int64(1), "developer"))
	mock.ExpectQuery(`FROM group_permissions gp`).
		WithArgs([]int64{1}).
		WillReturnRows(pgxmock.NewRows([]string{"group_id", "id", "codename", "name"}).
			AddRow(int64(1), int64(10), "todo.add", "Can add todo"))
	mock.ExpectQuery(`SELECT id, role FROM permission_groups WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "role"}))

	g, err := s.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "developer", g.Role)
	require.Len(t, g.Permissions, 1)
	assert.Equal(t, "todo.add", g.Permissions[0].Codename)

	_, err = s.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, store.ErrGroupNotFound)
}

func TestGroupStore_LoadMembers(t *testing.T) {
	mock := newMockPool(t)
	s := postgres.NewPostgresGroupStore(mock, nil)

	cols := append([]string{"group_id"}, userCols...)
	mock.ExpectQuery(`FROM user_roles ur\s+JOIN users u`).
		WithArgs([]int64{1, 2}).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(1), int64(5), "ivan", "Ivan", (*string)(nil), "Ivanov", "",
				(*time.Time)(nil), "", false, false, time.Now().UTC()))

	groups := []*domain.PermissionGroup{{ID: 1}, {ID: 2}}
	require.NoError(t, s.LoadMembers(context.Background(), groups))

	require.Len(t, groups[0].Users, 1)
	assert.Equal(t, "ivan", groups[0].Users[0].Username)
	assert.Equal(t, domain.Inactive, groups[0].Users[0].Lifecycle, "members are loaded regardless of lifecycle")
	assert.Empty(t, groups[1].Users)
}
