// Package authz decides whether a principal may perform an action on a
// resource. Handlers and services depend on the Authorizer interface so the
// policy can be replaced without touching them.
package authz

import (
	"context"
	"errors"

	"github.com/phrazzld/todo-api/internal/domain"
)

var (
	// ErrNotAuthenticated is returned when an anonymous caller attempts an
	// action that requires an identity.
	ErrNotAuthenticated = errors.New("authentication credentials were not provided")

	// ErrPermissionDenied is returned when an authenticated caller lacks the
	// right to perform the action.
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")
)

// Resource names a kind of entity exposed by the API.
type Resource string

// Resources guarded by the policy.
const (
	ResourceUser    Resource = "user"
	ResourceProject Resource = "project"
	ResourceTodo    Resource = "todo"
	ResourceGroup   Resource = "group"
)

// Action names an operation on a resource.
type Action string

// Actions map one to one onto controller operations.
const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDestroy  Action = "destroy"
)

// Safe reports whether the action never changes state.
func (a Action) Safe() bool {
	return a == ActionList || a == ActionRetrieve
}

// Authorizer decides whether principal may perform action on resource.
// A nil principal is an anonymous caller. target is the entity acted on
// (*domain.User, *domain.Project or *domain.Todo) and is nil for list and
// create checks that have no existing entity.
type Authorizer interface {
	Authorize(ctx context.Context, principal *domain.User, resource Resource, action Action, target any) error
}

// AuthorizerFunc adapts a function to the Authorizer interface.
type AuthorizerFunc func(ctx context.Context, principal *domain.User, resource Resource, action Action, target any) error

// Authorize calls f.
func (f AuthorizerFunc) Authorize(ctx context.Context, principal *domain.User, resource Resource, action Action, target any) error {
	return f(ctx, principal, resource, action, target)
}

// AllowAll permits every action. It is meant for tests and local tooling.
var AllowAll Authorizer = AuthorizerFunc(func(context.Context, *domain.User, Resource, Action, any) error {
	return nil
})
