package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
)

// TestEntityErrorsWrapGenericErrors ensures entity-specific errors can be
// matched against their generic counterparts with errors.Is.
func TestEntityErrorsWrapGenericErrors(t *testing.T) {
	t.Parallel()

	notFound := []error{
		store.ErrUserNotFound,
		store.ErrProjectNotFound,
		store.ErrTodoNotFound,
		store.ErrGroupNotFound,
	}
	for _, err := range notFound {
		assert.True(t, store.IsNotFoundError(err), "%v should be a not found error", err)
		assert.False(t, errors.Is(err, store.ErrDuplicate), "%v should not be a duplicate error", err)
	}

	assert.ErrorIs(t, store.ErrUsernameExists, store.ErrDuplicate)
	assert.False(t, errors.Is(store.ErrUserNotFound, store.ErrTodoNotFound))

	wrapped := fmt.Errorf("loading todo 7: %w", store.ErrTodoNotFound)
	assert.True(t, store.IsNotFoundError(wrapped))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := store.NewStoreError("todo", "deactivate", "exec failed", cause)

	assert.Equal(t, "deactivate operation on todo failed: exec failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := store.NewStoreError("user", "list", "bad filter", nil)
	assert.Equal(t, "list operation on user failed: bad filter", bare.Error())
}
