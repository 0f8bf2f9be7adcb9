package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Username and password constraints.
const (
	MaxUsernameLength = 150
	MaxNameLength     = 64
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt's practical limit
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// User represents an account of the todo application.
// Projects, Todos and Roles are only populated by expanded reads.
type User struct {
	ID           int64
	Username     string
	FirstName    string
	MiddleName   string // empty when not set
	LastName     string
	Email        string
	Birthdate    *time.Time
	Password     string // plaintext, set only while creating or changing the password
	PasswordHash string
	Lifecycle    Lifecycle
	IsSuperuser  bool
	DateJoined   time.Time

	ProjectIDs []int64
	RoleIDs    []int64

	Todos    []Todo
	Projects []Project
	Roles    []PermissionGroup
}

// NewUser creates an active, non-superuser account.
// The caller must hash Password before the user is stored.
func NewUser(username, email, password string) (*User, error) {
	u := &User{
		Username:   username,
		Email:      email,
		Password:   password,
		Lifecycle:  Active,
		DateJoined: time.Now().UTC(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the user's own fields. Relations are validated by the store.
func (u *User) Validate() error {
	if u.Username == "" {
		return NewValidationError("username", "is required", nil)
	}
	if utf8.RuneCountInString(u.Username) > MaxUsernameLength {
		return NewValidationError("username", "is too long", nil)
	}
	if !usernamePattern.MatchString(u.Username) {
		return NewValidationError("username", "may contain only letters, digits and @/./+/-/_", ErrInvalidFormat)
	}
	for field, v := range map[string]string{
		"firstName":  u.FirstName,
		"middleName": u.MiddleName,
		"lastName":   u.LastName,
	} {
		if utf8.RuneCountInString(v) > MaxNameLength {
			return NewValidationError(field, "is too long", nil)
		}
	}
	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return NewValidationError("password", "is too short", nil)
		}
		if len(u.Password) > MaxPasswordLength {
			return NewValidationError("password", "is too long", nil)
		}
	}
	return nil
}

// IsActive reports whether the account is visible through default queries.
func (u *User) IsActive() bool {
	return u.Lifecycle == Active
}

// Deactivate performs the soft delete. Calling it on an inactive user is a no-op.
func (u *User) Deactivate() {
	u.Lifecycle = Inactive
}

// FullName joins first, middle and last name with single spaces.
// Empty parts are skipped, so a user without a middle name yields "First Last".
func (u *User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName, u.MiddleName, u.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
