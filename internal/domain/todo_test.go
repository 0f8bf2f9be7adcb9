package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewTodo(t *testing.T) {
	todo, err := NewTodo(1, 2, "write the report")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !todo.IsActive() {
		t.Error("Expected new todo to be active")
	}
	if todo.Created.IsZero() || todo.Updated.IsZero() {
		t.Error("Expected timestamps to be set")
	}

	if _, err := NewTodo(0, 2, "text"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected ErrInvalidID for missing project, got %v", err)
	}
	if _, err := NewTodo(1, 2, "   "); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for blank text, got %v", err)
	}
}

func TestTodoDeactivateIsIdempotent(t *testing.T) {
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	todo := Todo{ID: 1, ProjectID: 1, UserID: 1, Text: "x", Lifecycle: Active, Updated: past}

	todo.Deactivate()
	if todo.IsActive() {
		t.Fatal("Expected todo to be inactive")
	}
	firstUpdate := todo.Updated
	if !firstUpdate.After(past) {
		t.Error("Expected Updated to move forward on deactivation")
	}

	todo.Deactivate()
	if todo.Updated != firstUpdate {
		t.Error("Expected second Deactivate to leave the todo untouched")
	}
}
