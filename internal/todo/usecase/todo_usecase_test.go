package usecase

import (
	"testing"
	"time"

	detectdomain "taskbot-backend/internal/detect/domain"
	"taskbot-backend/internal/todo/domain"
	"taskbot-backend/internal/todo/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestUsecase(t *testing.T) TodoUsecase {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewTodoUsecase(repository.NewGormTodoRepository(db))
}

func TestCreateTodoDefaults(t *testing.T) {
	uc := newTestUsecase(t)

	todo, err := uc.CreateTodo("U1", "Water plants", "", nil, "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.PriorityMedium, todo.Priority)
	assert.Equal(t, domain.TaskTypeGeneral, todo.TaskType)
	assert.Equal(t, domain.TodoStatusPending, todo.Status)
	assert.Equal(t, "U1", todo.CreatedBy)
}

func TestCreateTodoParsesDueDate(t *testing.T) {
	uc := newTestUsecase(t)

	due := "2025-06-13T17:00:00Z"
	todo, err := uc.CreateTodo("U1", "Ship release", "", &due, "high", "deadline")
	require.NoError(t, err)

	require.NotNil(t, todo.DueDate)
	assert.Equal(t, time.Date(2025, 6, 13, 17, 0, 0, 0, time.UTC), todo.DueDate.UTC())
	assert.Equal(t, domain.PriorityHigh, todo.Priority)
	assert.Equal(t, domain.TaskTypeDeadline, todo.TaskType)
}

func TestGetTodoByIDOwnership(t *testing.T) {
	uc := newTestUsecase(t)

	todo, err := uc.CreateTodo("U1", "Water plants", "", nil, "", "")
	require.NoError(t, err)

	_, err = uc.GetTodoByID("U2", todo.ID)
	require.EqualError(t, err, "unauthorized")

	_, err = uc.GetTodoByID("U1", "missing")
	require.EqualError(t, err, "todo not found")

	got, err := uc.GetTodoByID("U1", todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, got.ID)
}

func TestUpdateTodoFields(t *testing.T) {
	uc := newTestUsecase(t)

	todo, err := uc.CreateTodo("U1", "Old title", "", nil, "", "")
	require.NoError(t, err)

	title := "New title"
	priority := "critical"
	updated, err := uc.UpdateTodo("U1", todo.ID, TodoUpdateRequest{Title: &title, Priority: &priority})
	require.NoError(t, err)

	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, domain.PriorityCritical, updated.Priority)
}

func TestCompleteTodoStampsCompletion(t *testing.T) {
	uc := newTestUsecase(t)

	todo, err := uc.CreateTodo("U1", "Water plants", "", nil, "", "")
	require.NoError(t, err)

	done, err := uc.CompleteTodo("U1", todo.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.TodoStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, "U1", done.CompletedBy)
}

func TestReopeningClearsCompletion(t *testing.T) {
	uc := newTestUsecase(t)

	todo, err := uc.CreateTodo("U1", "Water plants", "", nil, "", "")
	require.NoError(t, err)

	_, err = uc.CompleteTodo("U1", todo.ID)
	require.NoError(t, err)

	status := "pending"
	reopened, err := uc.UpdateTodo("U1", todo.ID, TodoUpdateRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.TodoStatusPending, reopened.Status)
	assert.Nil(t, reopened.CompletedAt)
	assert.Empty(t, reopened.CompletedBy)
}

func TestDeleteTodoOwnership(t *testing.T) {
	uc := newTestUsecase(t)

	todo, err := uc.CreateTodo("U1", "Water plants", "", nil, "", "")
	require.NoError(t, err)

	require.EqualError(t, uc.DeleteTodo("U2", todo.ID), "unauthorized")
	require.NoError(t, uc.DeleteTodo("U1", todo.ID))
	require.EqualError(t, uc.DeleteTodo("U1", todo.ID), "todo not found")
}

func TestPersistCandidateMapsFields(t *testing.T) {
	uc := newTestUsecase(t)

	due := time.Date(2025, 6, 13, 17, 0, 0, 0, time.UTC)
	cand := &detectdomain.TaskCandidate{
		Title:             "Fix login bug",
		Description:       "login broken on staging",
		TaskType:          domain.TaskTypeBug,
		Priority:          domain.PriorityHigh,
		AssigneeID:        "U7",
		AssigneeName:      "sarah",
		DueDate:           &due,
		Confidence:        0.85,
		SourceKind:        detectdomain.SourceKindChannel,
		SourceID:          "C1",
		SourceName:        "eng",
		OriginMessageTS:   "1.0",
		OriginMessageLink: "https://example.com/C1/1.0",
		AuthorID:          "U2",
	}

	created, todo, err := uc.PersistCandidate("U1", cand)
	require.NoError(t, err)
	assert.True(t, created)

	assert.Equal(t, "U1", todo.OwnerID)
	assert.Equal(t, "Fix login bug", todo.Title)
	assert.Equal(t, "channel", todo.SourceKind)
	assert.Equal(t, "U7", todo.AssignedTo)
	assert.Equal(t, "sarah", todo.AssignedToName)
	assert.Equal(t, "U2", todo.CreatedBy)
	assert.Equal(t, 0.85, todo.Confidence)
	assert.Equal(t, domain.TodoStatusPending, todo.Status)

	// Second pass over the same message is a no-op
	created, again, err := uc.PersistCandidate("U1", cand)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, todo.ID, again.ID)
}
