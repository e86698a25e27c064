package scheduler

import (
	"context"
	"testing"
	"time"

	"taskbot-backend/internal/todo/domain"
	"taskbot-backend/internal/todo/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	repository.TodoRepository
	due    []*domain.Todo
	marked []string
}

func (f *fakeRepo) FindDueForReminder(_ time.Time) ([]*domain.Todo, error) {
	return f.due, nil
}

func (f *fakeRepo) MarkReminderSent(id string) error {
	f.marked = append(f.marked, id)
	return nil
}

type fakeReminder struct {
	sent []*domain.Todo
}

func (f *fakeReminder) TodoDueSoon(_ context.Context, todo *domain.Todo) {
	f.sent = append(f.sent, todo)
}

func TestCheckAndSendReminders(t *testing.T) {
	due := time.Now().Add(30 * time.Minute)
	repo := &fakeRepo{due: []*domain.Todo{
		{ID: "t1", OwnerID: "U1", Title: "Ship release", DueDate: &due},
		{ID: "t2", OwnerID: "U2", Title: "Review PR", DueDate: &due},
	}}
	reminder := &fakeReminder{}

	s := NewReminderScheduler(repo, reminder)
	s.checkAndSendReminders()

	require.Len(t, reminder.sent, 2)
	assert.Equal(t, "Ship release", reminder.sent[0].Title)
	// Sent reminders are marked so the next tick skips them
	assert.Equal(t, []string{"t1", "t2"}, repo.marked)
}

func TestCheckAndSendRemindersNothingDue(t *testing.T) {
	repo := &fakeRepo{}
	reminder := &fakeReminder{}

	s := NewReminderScheduler(repo, reminder)
	s.checkAndSendReminders()

	assert.Empty(t, reminder.sent)
	assert.Empty(t, repo.marked)
}
