package domain

import (
	"time"

	tododomain "taskbot-backend/internal/todo/domain"
)

// SourceKind distinguishes where a message came from
type SourceKind string

const (
	SourceKindChannel SourceKind = "channel"
	SourceKindDM      SourceKind = "dm"
)

// TaskCandidate is a detected-but-not-yet-persisted todo. The detector fills the
// content fields; the scanner fills the source fields before persistence.
type TaskCandidate struct {
	Title        string
	Description  string
	TaskType     tododomain.TaskType
	Priority     tododomain.Priority
	AssigneeID   string
	AssigneeName string
	DueDate      *time.Time
	Confidence   float64

	SourceKind        SourceKind
	SourceID          string
	SourceName        string
	OriginMessageTS   string
	OriginMessageLink string
	AuthorID          string
}
