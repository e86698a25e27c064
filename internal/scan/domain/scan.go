package domain

import (
	"time"

	detectdomain "taskbot-backend/internal/detect/domain"
)

// Source is a conversation the scanner reads messages from
type Source struct {
	ID   string
	Name string
	Kind detectdomain.SourceKind
}

// RawMessage is a human-authored message pulled from a source
type RawMessage struct {
	Text     string
	AuthorID string
	TS       string
}

// FailedSource records a source the scan could not read and why
type FailedSource struct {
	SourceID string `json:"source_id"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
}

// ScanResult summarizes a full scan run. A scan that loses some sources still
// reports the todos it found in the rest.
type ScanResult struct {
	SourceCount     int                          `json:"source_count"`
	SourcesFailed   int                          `json:"sources_failed"`
	CandidatesFound int                          `json:"candidates_found"`
	TodosCreated    int                          `json:"todos_created"`
	Candidates      []*detectdomain.TaskCandidate `json:"-"`
	FailedSources   []FailedSource               `json:"failed_sources,omitempty"`
}

// SourceConfig holds per-conversation scanning preferences
type SourceConfig struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	SourceID       string    `json:"source_id" gorm:"uniqueIndex;not null"`
	AutoDetect     bool      `json:"auto_detect" gorm:"default:true"`
	NotifyOnCreate bool      `json:"notify_on_create" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
