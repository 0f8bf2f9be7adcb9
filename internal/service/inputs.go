package service

import "time"

// Write inputs carry pointer fields so a partial update can tell an omitted
// field from a zero value. For a full update (partial == false) omitted
// optional fields are reset and omitted required fields are validation errors.

// UserInput is the write payload for users.
type UserInput struct {
	Username    *string
	FirstName   *string
	MiddleName  *string
	LastName    *string
	Email       *string
	Birthdate   *time.Time
	Password    *string
	IsSuperuser *bool
	Roles       *[]int64
	Projects    *[]int64
}

// ProjectInput is the write payload for projects.
type ProjectInput struct {
	Name       *string
	Repository *string
	Users      *[]int64
}

// TodoInput is the write payload for todos. A nil User on create means the
// caller is the author.
type TodoInput struct {
	Project *int64
	User    *int64
	Text    *string
}

func pick[T any](v *T, current T, partial bool) T {
	if v != nil {
		return *v
	}
	if partial {
		return current
	}
	var zero T
	return zero
}
