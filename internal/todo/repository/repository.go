package repository

import (
	"time"

	"taskbot-backend/internal/todo/domain"
)

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	// Create creates a new todo
	Create(todo *domain.Todo) error

	// FindByID finds a todo by its ID
	FindByID(id string) (*domain.Todo, error)

	// FindByOwner finds all todos for an owner with optional status filter
	FindByOwner(ownerID string, status *domain.TodoStatus, limit, offset int) ([]*domain.Todo, int64, error)

	// Update updates an existing todo
	Update(todo *domain.Todo) error

	// Delete deletes a todo by ID
	Delete(id string) error

	// EnsureForMessage inserts the todo unless one already exists for the same
	// (source_id, origin_message_ts) pair. Returns whether a row was created and
	// the stored row either way.
	EnsureForMessage(todo *domain.Todo) (bool, *domain.Todo, error)

	// FindDueForReminder finds open todos due before the deadline that have not
	// been reminded yet
	FindDueForReminder(deadline time.Time) ([]*domain.Todo, error)

	// MarkReminderSent marks a todo's due-date reminder as sent
	MarkReminderSent(id string) error
}
