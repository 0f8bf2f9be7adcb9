package api

import (
	"time"

	"github.com/phrazzld/todo-api/internal/service"
)

// Common request/response structures. JSON field names are camelCase.

// userFields are the user's own fields shared by both representations.
type userFields struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"firstName"`
	MiddleName  *string   `json:"middleName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Birthdate   *string   `json:"birthdate"`
	IsActive    bool      `json:"isActive"`
	IsSuperuser bool      `json:"isSuperuser"`
	DateJoined  time.Time `json:"dateJoined"`
}

// UserReadResponse is the expanded user representation returned by reads.
type UserReadResponse struct {
	userFields
	UserTodos    []TodoResponse    `json:"userTodos"`
	UserProjects []ProjectResponse `json:"userProjects"`
	Roles        []RoleResponse    `json:"roles"`
}

// UserWriteResponse is the flat user representation returned by writes.
// Relations are id arrays.
type UserWriteResponse struct {
	userFields
	Roles        []int64 `json:"roles"`
	UserProjects []int64 `json:"userProjects"`
}

// UserRequest is the payload for creating and updating users.
type UserRequest struct {
	Username     *string  `json:"username"     validate:"omitempty,max=150"`
	FirstName    *string  `json:"firstName"    validate:"omitempty,max=64"`
	MiddleName   *string  `json:"middleName"   validate:"omitempty,max=64"`
	LastName     *string  `json:"lastName"     validate:"omitempty,max=64"`
	Email        *string  `json:"email"        validate:"omitempty,email,max=254"`
	Birthdate    *string  `json:"birthdate"`
	Password     *string  `json:"password"     validate:"omitempty,max=72"`
	IsSuperuser  *bool    `json:"isSuperuser"`
	Roles        *[]int64 `json:"roles"        validate:"omitempty,dive,gt=0"`
	UserProjects *[]int64 `json:"userProjects" validate:"omitempty,dive,gt=0"`
}

func (req *UserRequest) toInput() (service.UserInput, error) {
	birthdate, err := parseDate("birthdate", req.Birthdate)
	if err != nil {
		return service.UserInput{}, err
	}
	return service.UserInput{
		Username:    req.Username,
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		Email:       req.Email,
		Birthdate:   birthdate,
		Password:    req.Password,
		IsSuperuser: req.IsSuperuser,
		Roles:       req.Roles,
		Projects:    req.UserProjects,
	}, nil
}

// ProjectResponse is the project representation.
type ProjectResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Repository string    `json:"repository"`
	Users      []int64   `json:"users"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
}

// ProjectRequest is the payload for creating and updating projects.
type ProjectRequest struct {
	Name       *string  `json:"name"       validate:"omitempty,max=64"`
	Repository *string  `json:"repository" validate:"omitempty,url"`
	Users      *[]int64 `json:"users"      validate:"omitempty,dive,gt=0"`
}

func (req *ProjectRequest) toInput() service.ProjectInput {
	return service.ProjectInput{Name: req.Name, Repository: req.Repository, Users: req.Users}
}

// TodoResponse is the todo representation.
type TodoResponse struct {
	ID       int64     `json:"id"`
	Project  int64     `json:"project"`
	User     int64     `json:"user"`
	Text     string    `json:"text"`
	IsActive bool      `json:"isActive"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// TodoRequest is the payload for creating and updating todos.
// An omitted user on create means the caller is the author.
type TodoRequest struct {
	Project *int64  `json:"project" validate:"omitempty,gt=0"`
	User    *int64  `json:"user"    validate:"omitempty,gt=0"`
	Text    *string `json:"text"`
}

func (req *TodoRequest) toInput() service.TodoInput {
	return service.TodoInput{Project: req.Project, User: req.User, Text: req.Text}
}

// PermissionResponse is a permission nested in a group.
type PermissionResponse struct {
	ID       int64  `json:"id"`
	Codename string `json:"codename"`
	Name     string `json:"name"`
}

// RoleResponse is a permission group nested in a user.
type RoleResponse struct {
	ID          int64                `json:"id"`
	Role        string               `json:"role"`
	Permissions []PermissionResponse `json:"permissions"`
}

// GroupResponse is the expanded permission group representation.
type GroupResponse struct {
	RoleResponse
	Users []UserReadResponse `json:"users"`
}

// LoginResponse is returned by the login helper endpoint.
type LoginResponse struct {
	Login string `json:"login"`
}

// FioResponse is returned by the full name helper endpoint.
type FioResponse struct {
	Fio string `json:"fio"`
}

// TokenObtainRequest is the payload for obtaining a token pair.
type TokenObtainRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenRefreshRequest is the payload for refreshing a token pair.
type TokenRefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// TokenResponse carries an access token and its refresh token.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
