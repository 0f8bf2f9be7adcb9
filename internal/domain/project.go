package domain

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxProjectNameLength limits project names.
const MaxProjectNameLength = 64

// Project groups todos and has a set of member users.
type Project struct {
	ID         int64
	Name       string
	Repository string
	UserIDs    []int64
	Created    time.Time
	Updated    time.Time
}

// NewProject creates a project with the given members.
func NewProject(name, repository string, userIDs []int64) (*Project, error) {
	now := time.Now().UTC()
	p := &Project{
		Name:       strings.TrimSpace(name),
		Repository: strings.TrimSpace(repository),
		UserIDs:    userIDs,
		Created:    now,
		Updated:    now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the project's fields.
func (p *Project) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "is required", nil)
	}
	if utf8.RuneCountInString(p.Name) > MaxProjectNameLength {
		return NewValidationError("name", "is too long", nil)
	}
	if p.Repository != "" {
		u, err := url.ParseRequestURI(p.Repository)
		if err != nil || u.Host == "" {
			return NewValidationError("repository", "must be a valid URL", ErrInvalidFormat)
		}
	}
	for _, id := range p.UserIDs {
		if err := ValidateID("users", id); err != nil {
			return err
		}
	}
	return nil
}

// HasMember reports whether the user is a member of the project.
func (p *Project) HasMember(userID int64) bool {
	for _, id := range p.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
