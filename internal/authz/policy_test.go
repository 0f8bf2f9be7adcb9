package authz_test

import (
	"context"
	"testing"

	"github.com/phrazzld/todo-api/internal/authz"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy(t *testing.T) {
	t.Parallel()

	admin := &domain.User{ID: 1, Username: "admin", IsSuperuser: true}
	ivan := &domain.User{ID: 2, Username: "ivan"}
	petr := &domain.User{ID: 3, Username: "petr"}
	retired := &domain.User{ID: 4, Username: "retired", Lifecycle: domain.Inactive}

	project := &domain.Project{ID: 10, Name: "todo", UserIDs: []int64{2}}
	todo := &domain.Todo{ID: 20, ProjectID: 10, UserID: 2, Text: "ship"}

	tests := []struct {
		name      string
		principal *domain.User
		resource  authz.Resource
		action    authz.Action
		target    any
		want      error
	}{
		{"anonymous may list users", nil, authz.ResourceUser, authz.ActionList, nil, nil},
		{"anonymous may retrieve todos", nil, authz.ResourceTodo, authz.ActionRetrieve, todo, nil},
		{"anonymous may not create todos", nil, authz.ResourceTodo, authz.ActionCreate, nil, authz.ErrNotAuthenticated},
		{"anonymous may not delete users", nil, authz.ResourceUser, authz.ActionDestroy, ivan, authz.ErrNotAuthenticated},

		{"superuser may create users", admin, authz.ResourceUser, authz.ActionCreate, nil, nil},
		{"superuser may delete other users", admin, authz.ResourceUser, authz.ActionDestroy, ivan, nil},
		{"superuser may not write groups", admin, authz.ResourceGroup, authz.ActionUpdate, nil, authz.ErrPermissionDenied},
		{"user may not create users", ivan, authz.ResourceUser, authz.ActionCreate, nil, authz.ErrPermissionDenied},
		{"user may update self", ivan, authz.ResourceUser, authz.ActionUpdate, ivan, nil},
		{"user may not update others", ivan, authz.ResourceUser, authz.ActionUpdate, petr, authz.ErrPermissionDenied},
		{"user may not delete self", ivan, authz.ResourceUser, authz.ActionDestroy, ivan, authz.ErrPermissionDenied},

		{"user may create projects", petr, authz.ResourceProject, authz.ActionCreate, nil, nil},
		{"member may update project", ivan, authz.ResourceProject, authz.ActionUpdate, project, nil},
		{"non-member may not delete project", petr, authz.ResourceProject, authz.ActionDestroy, project, authz.ErrPermissionDenied},

		{"user may create todos", petr, authz.ResourceTodo, authz.ActionCreate, nil, nil},
		{"author may delete todo", ivan, authz.ResourceTodo, authz.ActionDestroy, todo, nil},
		{"other user may not update todo", petr, authz.ResourceTodo, authz.ActionUpdate, todo, authz.ErrPermissionDenied},

		{"inactive principal is denied", retired, authz.ResourceTodo, authz.ActionCreate, nil, authz.ErrPermissionDenied},
	}

	policy := authz.DefaultPolicy{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Authorize(context.Background(), tc.principal, tc.resource, tc.action, tc.target)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestAllowAll(t *testing.T) {
	t.Parallel()

	assert.NoError(t, authz.AllowAll.Authorize(context.Background(), nil, authz.ResourceUser, authz.ActionDestroy, nil))
}
