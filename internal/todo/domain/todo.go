package domain

import "time"

// Priority represents todo priority level
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// TaskType categorizes what kind of work a todo represents
type TaskType string

const (
	TaskTypeBug      TaskType = "bug"
	TaskTypeFeature  TaskType = "feature"
	TaskTypeMeeting  TaskType = "meeting"
	TaskTypeReview   TaskType = "review"
	TaskTypeDeadline TaskType = "deadline"
	TaskTypeUrgent   TaskType = "urgent"
	TaskTypeGeneral  TaskType = "general"
)

// ParsePriority maps a free-form priority label to a Priority,
// defaulting to medium for anything unrecognized.
func ParsePriority(p string) Priority {
	switch p {
	case "critical":
		return PriorityCritical
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// ParseTaskType maps a free-form type label to a TaskType,
// defaulting to general for anything unrecognized.
func ParseTaskType(t string) TaskType {
	switch t {
	case "bug":
		return TaskTypeBug
	case "feature":
		return TaskTypeFeature
	case "meeting":
		return TaskTypeMeeting
	case "review":
		return TaskTypeReview
	case "deadline":
		return TaskTypeDeadline
	case "urgent":
		return TaskTypeUrgent
	default:
		return TaskTypeGeneral
	}
}

// TodoStatus represents the current state of a todo
type TodoStatus string

const (
	TodoStatusPending    TodoStatus = "pending"
	TodoStatusInProgress TodoStatus = "in_progress"
	TodoStatusCompleted  TodoStatus = "completed"
	TodoStatusCancelled  TodoStatus = "cancelled"
)

// Todo represents an action item extracted from a workspace message or created manually.
// SourceID + OriginMessageTS form the natural key that keeps repeated scans from
// inserting the same message twice.
type Todo struct {
	ID      string `json:"id" gorm:"primaryKey"`
	OwnerID string `json:"owner_id" gorm:"index;not null"`

	SourceID          string `json:"source_id,omitempty" gorm:"index"`
	OriginMessageTS   string `json:"origin_message_ts,omitempty"`
	SourceKind        string `json:"source_kind,omitempty"`
	SourceName        string `json:"source_name,omitempty"`
	OriginMessageLink string `json:"origin_message_link,omitempty"`

	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	TaskType    TaskType   `json:"task_type" gorm:"default:general"`
	Priority    Priority   `json:"priority" gorm:"default:medium"`
	Status      TodoStatus `json:"status" gorm:"default:pending"`

	AssignedTo     string     `json:"assigned_to,omitempty"`
	AssignedToName string     `json:"assigned_to_name,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	ReminderSent   bool       `json:"reminder_sent" gorm:"default:false"`
	Confidence     float64    `json:"confidence"`
	CreatedBy      string     `json:"created_by,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CompletedBy string     `json:"completed_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
