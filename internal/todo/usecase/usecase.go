package usecase

import (
	detectdomain "taskbot-backend/internal/detect/domain"
	"taskbot-backend/internal/todo/domain"
)

// TodoUsecase defines the interface for todo business logic
type TodoUsecase interface {
	// CreateTodo creates a new todo manually
	CreateTodo(ownerID, title, description string, dueDate *string, priority, taskType string) (*domain.Todo, error)

	// GetTodoByID retrieves a todo by ID (with ownership check)
	GetTodoByID(ownerID, todoID string) (*domain.Todo, error)

	// GetOwnerTodos retrieves all todos for an owner with optional status filter
	GetOwnerTodos(ownerID string, status *string, limit, offset int) ([]*domain.Todo, int64, error)

	// UpdateTodo updates an existing todo
	UpdateTodo(ownerID, todoID string, updates TodoUpdateRequest) (*domain.Todo, error)

	// CompleteTodo marks a todo completed and stamps who closed it
	CompleteTodo(ownerID, todoID string) (*domain.Todo, error)

	// DeleteTodo deletes a todo
	DeleteTodo(ownerID, todoID string) error

	// PersistCandidate stores an extracted candidate, skipping messages that
	// were already turned into a todo
	PersistCandidate(ownerID string, cand *detectdomain.TaskCandidate) (bool, *domain.Todo, error)
}

// TodoUpdateRequest represents the fields that can be updated
type TodoUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	TaskType    *string `json:"task_type,omitempty"`
	Status      *string `json:"status,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
}
