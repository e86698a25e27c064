package repository

import (
	"strings"
	"time"

	"taskbot-backend/internal/todo/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormTodoRepository implements TodoRepository using GORM
type gormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM-based TodoRepository
func NewGormTodoRepository(db *gorm.DB) TodoRepository {
	// Auto-migrate the Todo model
	db.AutoMigrate(&domain.Todo{})
	// Partial unique index: source-derived todos are keyed by their origin
	// message, manual todos have no origin and stay unconstrained
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_todos_origin ON todos(source_id, origin_message_ts) WHERE origin_message_ts <> ''")
	return &gormTodoRepository{db: db}
}

func (r *gormTodoRepository) Create(todo *domain.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = time.Now()
	return r.db.Create(todo).Error
}

func (r *gormTodoRepository) FindByID(id string) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.db.Where("id = ?", id).First(&todo).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &todo, nil
}

func (r *gormTodoRepository) FindByOwner(ownerID string, status *domain.TodoStatus, limit, offset int) ([]*domain.Todo, int64, error) {
	var todos []*domain.Todo
	var total int64

	query := r.db.Model(&domain.Todo{}).Where("owner_id = ?", ownerID)

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Fetch with pagination, ordered by due_date (nulls last), then created_at
	err := query.Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, created_at DESC").
		Limit(limit).Offset(offset).Find(&todos).Error

	return todos, total, err
}

func (r *gormTodoRepository) Update(todo *domain.Todo) error {
	todo.UpdatedAt = time.Now()
	return r.db.Save(todo).Error
}

func (r *gormTodoRepository) Delete(id string) error {
	return r.db.Delete(&domain.Todo{}, "id = ?", id).Error
}

func (r *gormTodoRepository) EnsureForMessage(todo *domain.Todo) (bool, *domain.Todo, error) {
	if todo.SourceID == "" || todo.OriginMessageTS == "" {
		if err := r.Create(todo); err != nil {
			return false, nil, err
		}
		return true, todo, nil
	}

	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = time.Now()

	var existing domain.Todo
	res := r.db.Where("source_id = ? AND origin_message_ts = ?", todo.SourceID, todo.OriginMessageTS).
		Attrs(*todo).
		FirstOrCreate(&existing)
	if res.Error != nil {
		// Two scans can race past the lookup; the unique index wins, re-read the row.
		if isUniqueViolation(res.Error) {
			err := r.db.Where("source_id = ? AND origin_message_ts = ?", todo.SourceID, todo.OriginMessageTS).
				First(&existing).Error
			if err != nil {
				return false, nil, err
			}
			return false, &existing, nil
		}
		return false, nil, res.Error
	}

	return res.RowsAffected > 0, &existing, nil
}

func (r *gormTodoRepository) FindDueForReminder(deadline time.Time) ([]*domain.Todo, error) {
	var todos []*domain.Todo
	err := r.db.Where("due_date IS NOT NULL AND due_date <= ? AND reminder_sent = ? AND status NOT IN ?",
		deadline, false, []domain.TodoStatus{domain.TodoStatusCompleted, domain.TodoStatusCancelled}).
		Find(&todos).Error
	return todos, err
}

func (r *gormTodoRepository) MarkReminderSent(id string) error {
	return r.db.Model(&domain.Todo{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reminder_sent": true,
			"updated_at":    time.Now(),
		}).Error
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
