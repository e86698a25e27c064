package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"taskbot-backend/internal/detect/domain"
	tododomain "taskbot-backend/internal/todo/domain"
	"taskbot-backend/pkg/ai"
	"taskbot-backend/pkg/extract"
)

// taskIndicators gates the classifier. A message with none of these is never a
// task, so we skip the AI call entirely.
var taskIndicators = []string{
	// Action words
	"fix", "add", "create", "implement", "build", "develop", "update", "change",
	"review", "check", "test", "deploy", "merge", "approve", "investigate",
	"schedule", "plan", "organize", "prepare", "setup", "configure",

	// Task-related phrases
	"need to", "should", "must", "have to", "todo", "task", "action item",
	"follow up", "make sure", "don't forget", "remember to",

	// Issue words
	"bug", "error", "issue", "problem", "broken", "not working",

	// Time words
	"deadline", "due", "by", "urgent", "asap", "today", "tomorrow",
	"this week", "next week", "monday", "friday",

	// Assignment words
	"@", "assign", "responsible", "owner", "please", "can you", "could you",
}

// Detector turns a single message into a TaskCandidate, or nothing.
type Detector struct {
	classifier ai.Classifier
	policy     domain.Policy
	nowFn      func() time.Time
}

// NewDetector creates a Detector backed by the given classifier
func NewDetector(classifier ai.Classifier, policy domain.Policy) *Detector {
	return &Detector{
		classifier: classifier,
		policy:     policy,
		nowFn:      time.Now,
	}
}

// Detect analyzes one message. It returns nil when the message is not a task;
// classifier failures are logged and treated the same way so one bad message
// never aborts a scan.
func (d *Detector) Detect(ctx context.Context, text, sourceName string) *domain.TaskCandidate {
	if !IsPotentiallyTaskRelated(text) {
		return nil
	}

	detection, err := d.classifier.ClassifyMessage(ctx, text, sourceName)
	if err != nil {
		log.Printf("[Detector] Classification failed: %v", err)
		return nil
	}
	if detection == nil || !detection.IsTask {
		return nil
	}

	cand := &domain.TaskCandidate{
		Title:       detection.Title,
		Description: detection.Description,
		TaskType:    tododomain.ParseTaskType(detection.TaskType),
		Priority:    tododomain.ParsePriority(detection.Priority),
		Confidence:  detection.Confidence,
	}
	if cand.Title == "" {
		cand.Title = truncate(text, 100)
	}
	if cand.Description == "" {
		cand.Description = text
	}

	// Pattern extraction supplements the classifier, it never overrides it
	if assignee, ok := extract.ExtractAssignee(text); ok {
		cand.AssigneeID = assignee.UserID
		cand.AssigneeName = assignee.Name
	}
	cand.DueDate = extract.ExtractDueDate(text, d.nowFn())

	return cand
}

// IsPotentiallyTaskRelated is the cheap keyword gate run before any AI call
func IsPotentiallyTaskRelated(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range taskIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
