package domain

import (
	"strings"
	"time"
)

// Todo is a note attached to a project and authored by a user.
// Deleting a todo only deactivates it.
type Todo struct {
	ID        int64
	ProjectID int64
	UserID    int64
	Text      string
	Lifecycle Lifecycle
	Created   time.Time
	Updated   time.Time
}

// NewTodo creates an active todo.
func NewTodo(projectID, userID int64, text string) (*Todo, error) {
	now := time.Now().UTC()
	t := &Todo{
		ProjectID: projectID,
		UserID:    userID,
		Text:      text,
		Lifecycle: Active,
		Created:   now,
		Updated:   now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the todo's fields.
func (t *Todo) Validate() error {
	if err := ValidateID("project", t.ProjectID); err != nil {
		return err
	}
	if err := ValidateID("user", t.UserID); err != nil {
		return err
	}
	if strings.TrimSpace(t.Text) == "" {
		return NewValidationError("text", "is required", nil)
	}
	return nil
}

// IsActive reports whether the todo is visible through default queries.
func (t *Todo) IsActive() bool {
	return t.Lifecycle == Active
}

// Deactivate performs the soft delete. It is idempotent.
func (t *Todo) Deactivate() {
	if t.Lifecycle == Inactive {
		return
	}
	t.Lifecycle = Inactive
	t.Updated = time.Now().UTC()
}
