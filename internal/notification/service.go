package notification

import (
	"context"
	"fmt"
	"log"

	scandomain "taskbot-backend/internal/scan/domain"
	tododomain "taskbot-backend/internal/todo/domain"
	"taskbot-backend/pkg/slack"
)

// Service posts scan outcomes back into the workspace as bot messages
type Service struct {
	client *slack.Client
}

// NewService creates a notification Service
func NewService(client *slack.Client) *Service {
	return &Service{client: client}
}

// ScanCompleted DMs the requesting user a summary of the scan run.
// Delivery is best effort, a failed notification never fails the scan.
func (s *Service) ScanCompleted(ctx context.Context, userID string, result *scandomain.ScanResult) {
	text := fmt.Sprintf("Workspace scan complete!\n"+
		"• %d sources analyzed\n"+
		"• %d unique tasks found after deduplication\n"+
		"• %d new todos created",
		result.SourceCount, result.CandidatesFound, result.TodosCreated)

	if result.SourcesFailed > 0 {
		text += fmt.Sprintf("\n• %d sources could not be read", result.SourcesFailed)
	}

	if err := s.client.PostMessage(ctx, userID, text); err != nil {
		log.Printf("[Notification] Failed to send scan summary to %s: %v", userID, err)
	}
}

// TodoDueSoon DMs the owner that a todo's due date is approaching
func (s *Service) TodoDueSoon(ctx context.Context, todo *tododomain.Todo) {
	text := fmt.Sprintf("Reminder: *%s* is due %s (%s priority)",
		todo.Title, todo.DueDate.Format("Mon Jan 2 15:04"), todo.Priority)
	if todo.OriginMessageLink != "" {
		text += "\nOriginal message: " + todo.OriginMessageLink
	}

	if err := s.client.PostMessage(ctx, todo.OwnerID, text); err != nil {
		log.Printf("[Notification] Failed to send due reminder to %s: %v", todo.OwnerID, err)
	}
}

// TodoCreated announces a freshly created todo in its source conversation
func (s *Service) TodoCreated(ctx context.Context, sourceID string, todo *tododomain.Todo) {
	text := fmt.Sprintf("New todo created: *%s* (%s priority)", todo.Title, todo.Priority)
	if todo.AssignedToName != "" {
		text += fmt.Sprintf("\nAssigned to: %s", todo.AssignedToName)
	}
	if todo.DueDate != nil {
		text += fmt.Sprintf("\nDue: %s", todo.DueDate.Format("Mon Jan 2 15:04"))
	}

	if err := s.client.PostMessage(ctx, sourceID, text); err != nil {
		log.Printf("[Notification] Failed to announce todo in %s: %v", sourceID, err)
	}
}
