package authz

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// DefaultPolicy is the stock authorization policy:
//
//   - safe actions are open to everyone, anonymous callers included;
//   - users: create and destroy need a superuser, update needs the user
//     themselves or a superuser;
//   - projects: create needs any authenticated user, update and destroy
//     need a project member or a superuser;
//   - todos: create needs any authenticated user, update and destroy need
//     the author or a superuser;
//   - groups are read-only.
type DefaultPolicy struct{}

var _ Authorizer = DefaultPolicy{}

// Authorize implements Authorizer.
func (DefaultPolicy) Authorize(_ context.Context, principal *domain.User, resource Resource, action Action, target any) error {
	if action.Safe() {
		return nil
	}
	if principal == nil {
		return ErrNotAuthenticated
	}
	if !principal.IsActive() {
		return ErrPermissionDenied
	}
	if principal.IsSuperuser {
		if resource == ResourceGroup {
			return ErrPermissionDenied
		}
		return nil
	}

	switch resource {
	case ResourceUser:
		if action == ActionUpdate {
			if u, ok := target.(*domain.User); ok && u.ID == principal.ID {
				return nil
			}
		}
	case ResourceProject:
		switch action {
		case ActionCreate:
			return nil
		case ActionUpdate, ActionDestroy:
			if p, ok := target.(*domain.Project); ok && p.HasMember(principal.ID) {
				return nil
			}
		}
	case ResourceTodo:
		switch action {
		case ActionCreate:
			return nil
		case ActionUpdate, ActionDestroy:
			if t, ok := target.(*domain.Todo); ok && t.UserID == principal.ID {
				return nil
			}
		}
	}
	return ErrPermissionDenied
}
