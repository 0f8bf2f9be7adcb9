package service_test

import (
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPool returns a pgxmock pool that fails the test on unmet expectations.
func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, pool.ExpectationsWereMet())
		pool.Close()
	})
	return pool
}

func ptr[T any](v T) *T {
	return &v
}

func activeUser(id int64) *domain.User {
	return &domain.User{
		ID:         id,
		Username:   "user" + string(rune('a'+id%26)),
		Lifecycle:  domain.Active,
		RoleIDs:    []int64{},
		ProjectIDs: []int64{},
	}
}

func superuser(id int64) *domain.User {
	u := activeUser(id)
	u.IsSuperuser = true
	return u
}
