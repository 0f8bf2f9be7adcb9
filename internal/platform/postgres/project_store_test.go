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

func TestProjectStore_GetByID(t *testing.T) {
	mock := newMockPool(t)
	s := postgres.NewPostgresProjectStore(mock, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .+ FROM projects WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "repository", "created", "updated"}).
			AddRow(int64(7), "todo", "https://example.com/todo", now, now))
	mock.ExpectQuery(`FROM project_users\s+WHERE project_id = ANY`).
		WithArgs([]int64{7}).
		WillReturnRows(pgxmock.NewRows([]string{"project_id", "user_id"}).AddRow(int64(7), int64(3)))

	p, err := s.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "todo", p.Name)
	assert.Equal(t, []int64{3}, p.UserIDs)
	assert.True(t, p.HasMember(3))
}

func TestProjectStore_Create_UnknownMember(t *testing.T) {
	mock := newMockPool(t)
	s := postgres.NewPostgresProjectStore(mock, nil)
	p, err := domain.NewProject("todo", "", []int64{99})
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs("todo", "", p.Created, p.Updated).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(`DELETE FROM project_users WHERE project_id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO project_users`).
		WithArgs(int64(1), []int64{99}).
		WillReturnError(newPgError("23503"))

	assert.ErrorIs(t, s.Create(context.Background(), p), store.ErrInvalidEntity)
}

func TestProjectStore_Delete(t *testing.T) {
	mock := newMockPool(t)
	s := postgres.NewPostgresProjectStore(mock, nil)

	mock.ExpectExec(`DELETE FROM projects WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM projects WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, s.Delete(context.Background(), 1))
	assert.ErrorIs(t, s.Delete(context.Background(), 2), store.ErrProjectNotFound)
}
