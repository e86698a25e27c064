package scheduler

import (
	"context"
	"log"
	"time"

	"taskbot-backend/internal/todo/domain"
	"taskbot-backend/internal/todo/repository"
)

// Reminder delivers a due-soon notice to the todo's owner
type Reminder interface {
	TodoDueSoon(ctx context.Context, todo *domain.Todo)
}

// ReminderScheduler periodically DMs owners about todos coming due
type ReminderScheduler struct {
	todoRepo repository.TodoRepository
	reminder Reminder
	interval time.Duration
	leadTime time.Duration
	stopChan chan struct{}
}

// NewReminderScheduler creates a new scheduler
func NewReminderScheduler(todoRepo repository.TodoRepository, reminder Reminder) *ReminderScheduler {
	return &ReminderScheduler{
		todoRepo: todoRepo,
		reminder: reminder,
		interval: 1 * time.Minute, // Check every minute
		leadTime: 1 * time.Hour,   // Remind one hour before the due date
		stopChan: make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *ReminderScheduler) Start() {
	log.Println("[ReminderScheduler] Starting due-date reminder scheduler (interval: 1 minute)")

	go func() {
		// Run immediately on start
		s.checkAndSendReminders()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.checkAndSendReminders()
			case <-s.stopChan:
				log.Println("[ReminderScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *ReminderScheduler) Stop() {
	close(s.stopChan)
}

func (s *ReminderScheduler) checkAndSendReminders() {
	deadline := time.Now().Add(s.leadTime)

	todos, err := s.todoRepo.FindDueForReminder(deadline)
	if err != nil {
		log.Printf("[ReminderScheduler] Error finding due todos: %v", err)
		return
	}

	if len(todos) == 0 {
		return
	}

	log.Printf("[ReminderScheduler] Found %d todos coming due", len(todos))

	for _, todo := range todos {
		s.reminder.TodoDueSoon(context.Background(), todo)

		// Mark sent regardless of delivery so owners are not spammed each tick
		if err := s.todoRepo.MarkReminderSent(todo.ID); err != nil {
			log.Printf("[ReminderScheduler] Error marking reminder sent for todo %s: %v", todo.ID, err)
		}
	}
}
