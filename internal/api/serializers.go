package api

import (
	"net/http"

	"github.com/phrazzld/todo-api/internal/domain"
)

// Capability selects which representation of a resource a request gets.
type Capability int

const (
	// Read is the expanded representation with nested relations.
	Read Capability = iota
	// Write is the flat representation with relations as id arrays.
	Write
)

// capabilityFor maps the HTTP method to a capability: safe methods read,
// everything else writes.
func capabilityFor(method string) Capability {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return Read
	default:
		return Write
	}
}

// Serializer renders a domain value as its response body.
type Serializer[T any] func(T) any

// userSerializer returns the user serializer for the capability.
func userSerializer(c Capability) Serializer[*domain.User] {
	if c == Read {
		return func(u *domain.User) any { return toUserRead(u) }
	}
	return func(u *domain.User) any { return toUserWrite(u) }
}

// groupSerializer returns the group serializer for the capability.
// Groups have no write representation.
func groupSerializer(c Capability) (Serializer[*domain.PermissionGroup], error) {
	if c != Read {
		return nil, domain.ErrNoWriteRepresentation
	}
	return func(g *domain.PermissionGroup) any { return toGroup(g) }, nil
}

func serializeAll[T any](items []T, s Serializer[T]) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = s(item)
	}
	return out
}

func toUserFields(u *domain.User) userFields {
	f := userFields{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		IsActive:    u.IsActive(),
		IsSuperuser: u.IsSuperuser,
		DateJoined:  u.DateJoined,
	}
	if u.MiddleName != "" {
		middle := u.MiddleName
		f.MiddleName = &middle
	}
	if u.Birthdate != nil {
		b := u.Birthdate.Format(dateLayout)
		f.Birthdate = &b
	}
	return f
}

func toUserRead(u *domain.User) UserReadResponse {
	resp := UserReadResponse{
		userFields:   toUserFields(u),
		UserTodos:    make([]TodoResponse, 0, len(u.Todos)),
		UserProjects: make([]ProjectResponse, 0, len(u.Projects)),
		Roles:        make([]RoleResponse, 0, len(u.Roles)),
	}
	for i := range u.Todos {
		resp.UserTodos = append(resp.UserTodos, toTodo(&u.Todos[i]))
	}
	for i := range u.Projects {
		resp.UserProjects = append(resp.UserProjects, toProject(&u.Projects[i]))
	}
	for i := range u.Roles {
		resp.Roles = append(resp.Roles, toRole(&u.Roles[i]))
	}
	return resp
}

func toUserWrite(u *domain.User) UserWriteResponse {
	return UserWriteResponse{
		userFields:   toUserFields(u),
		Roles:        nonNil(u.RoleIDs),
		UserProjects: nonNil(u.ProjectIDs),
	}
}

func toProject(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:         p.ID,
		Name:       p.Name,
		Repository: p.Repository,
		Users:      nonNil(p.UserIDs),
		Created:    p.Created,
		Updated:    p.Updated,
	}
}

func toTodo(t *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:       t.ID,
		Project:  t.ProjectID,
		User:     t.UserID,
		Text:     t.Text,
		IsActive: t.IsActive(),
		Created:  t.Created,
		Updated:  t.Updated,
	}
}

func toRole(g *domain.PermissionGroup) RoleResponse {
	perms := make([]PermissionResponse, 0, len(g.Permissions))
	for _, p := range g.Permissions {
		perms = append(perms, PermissionResponse{ID: p.ID, Codename: p.Codename, Name: p.Name})
	}
	return RoleResponse{ID: g.ID, Role: g.Role, Permissions: perms}
}

func toGroup(g *domain.PermissionGroup) GroupResponse {
	users := make([]UserReadResponse, 0, len(g.Users))
	for i := range g.Users {
		users = append(users, toUserRead(&g.Users[i]))
	}
	return GroupResponse{RoleResponse: toRole(g), Users: users}
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
