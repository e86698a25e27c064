package usecase

import (
	"errors"
	"time"

	detectdomain "taskbot-backend/internal/detect/domain"
	"taskbot-backend/internal/todo/domain"
	"taskbot-backend/internal/todo/repository"

	"github.com/google/uuid"
)

// todoUsecase implements TodoUsecase interface
type todoUsecase struct {
	todoRepo repository.TodoRepository
}

// NewTodoUsecase creates a new instance of todoUsecase
func NewTodoUsecase(todoRepo repository.TodoRepository) TodoUsecase {
	return &todoUsecase{
		todoRepo: todoRepo,
	}
}

func (u *todoUsecase) CreateTodo(ownerID, title, description string, dueDate *string, priority, taskType string) (*domain.Todo, error) {
	todo := &domain.Todo{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		TaskType:    domain.ParseTaskType(taskType),
		Priority:    domain.ParsePriority(priority),
		Status:      domain.TodoStatusPending,
		CreatedBy:   ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if dueDate != nil && *dueDate != "" {
		if t, err := time.Parse(time.RFC3339, *dueDate); err == nil {
			todo.DueDate = &t
		}
	}

	if err := u.todoRepo.Create(todo); err != nil {
		return nil, err
	}

	return todo, nil
}

func (u *todoUsecase) GetTodoByID(ownerID, todoID string) (*domain.Todo, error) {
	todo, err := u.todoRepo.FindByID(todoID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, errors.New("todo not found")
	}
	if todo.OwnerID != ownerID {
		return nil, errors.New("unauthorized")
	}
	return todo, nil
}

func (u *todoUsecase) GetOwnerTodos(ownerID string, status *string, limit, offset int) ([]*domain.Todo, int64, error) {
	var statusFilter *domain.TodoStatus
	if status != nil && *status != "" {
		s := domain.TodoStatus(*status)
		statusFilter = &s
	}
	return u.todoRepo.FindByOwner(ownerID, statusFilter, limit, offset)
}

func (u *todoUsecase) UpdateTodo(ownerID, todoID string, updates TodoUpdateRequest) (*domain.Todo, error) {
	todo, err := u.GetTodoByID(ownerID, todoID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		todo.Title = *updates.Title
	}
	if updates.Description != nil {
		todo.Description = *updates.Description
	}
	if updates.Priority != nil {
		todo.Priority = domain.ParsePriority(*updates.Priority)
	}
	if updates.TaskType != nil {
		todo.TaskType = domain.ParseTaskType(*updates.TaskType)
	}
	if updates.AssignedTo != nil {
		todo.AssignedTo = *updates.AssignedTo
	}
	if updates.Status != nil {
		applyStatus(todo, domain.TodoStatus(*updates.Status), ownerID)
	}
	if updates.DueDate != nil {
		if *updates.DueDate == "" {
			todo.DueDate = nil
		} else if t, err := time.Parse(time.RFC3339, *updates.DueDate); err == nil {
			todo.DueDate = &t
		}
	}

	todo.UpdatedAt = time.Now()
	if err := u.todoRepo.Update(todo); err != nil {
		return nil, err
	}

	return todo, nil
}

func (u *todoUsecase) CompleteTodo(ownerID, todoID string) (*domain.Todo, error) {
	todo, err := u.GetTodoByID(ownerID, todoID)
	if err != nil {
		return nil, err
	}

	applyStatus(todo, domain.TodoStatusCompleted, ownerID)
	todo.UpdatedAt = time.Now()
	if err := u.todoRepo.Update(todo); err != nil {
		return nil, err
	}

	return todo, nil
}

func (u *todoUsecase) DeleteTodo(ownerID, todoID string) error {
	todo, err := u.GetTodoByID(ownerID, todoID)
	if err != nil {
		return err
	}
	return u.todoRepo.Delete(todo.ID)
}

func (u *todoUsecase) PersistCandidate(ownerID string, cand *detectdomain.TaskCandidate) (bool, *domain.Todo, error) {
	todo := &domain.Todo{
		OwnerID:           ownerID,
		SourceID:          cand.SourceID,
		OriginMessageTS:   cand.OriginMessageTS,
		SourceKind:        string(cand.SourceKind),
		SourceName:        cand.SourceName,
		OriginMessageLink: cand.OriginMessageLink,
		Title:             cand.Title,
		Description:       cand.Description,
		TaskType:          cand.TaskType,
		Priority:          cand.Priority,
		Status:            domain.TodoStatusPending,
		AssignedTo:        cand.AssigneeID,
		AssignedToName:    cand.AssigneeName,
		DueDate:           cand.DueDate,
		Confidence:        cand.Confidence,
		CreatedBy:         cand.AuthorID,
	}

	return u.todoRepo.EnsureForMessage(todo)
}

func applyStatus(todo *domain.Todo, status domain.TodoStatus, actorID string) {
	todo.Status = status
	if status == domain.TodoStatusCompleted {
		now := time.Now()
		todo.CompletedAt = &now
		todo.CompletedBy = actorID
	} else {
		todo.CompletedAt = nil
		todo.CompletedBy = ""
	}
}
