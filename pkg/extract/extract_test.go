package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday, 2025-06-11 10:00 UTC
var wednesday = time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)

func TestExtractAssigneeMention(t *testing.T) {
	assignee, ok := ExtractAssignee("can you fix this <@U123ABC>?")
	require.True(t, ok)
	assert.Equal(t, "U123ABC", assignee.UserID)
	assert.Empty(t, assignee.Name)
}

func TestExtractAssigneeAtName(t *testing.T) {
	assignee, ok := ExtractAssignee("@john please review the PR")
	require.True(t, ok)
	assert.Equal(t, "john", assignee.Name)
	assert.Empty(t, assignee.UserID)
}

func TestExtractAssigneeMentionBeatsAtName(t *testing.T) {
	// Explicit mention outranks the looser patterns
	assignee, ok := ExtractAssignee("@docs bot says <@U999ZZZ> should handle it")
	require.True(t, ok)
	assert.Equal(t, "U999ZZZ", assignee.UserID)
}

func TestExtractAssigneePolite(t *testing.T) {
	assignee, ok := ExtractAssignee("sarah can you check the deploy logs")
	require.True(t, ok)
	assert.Equal(t, "sarah", assignee.Name)
}

func TestExtractAssigneeAssignedTo(t *testing.T) {
	assignee, ok := ExtractAssignee("this ticket is assigned to mike for next sprint")
	require.True(t, ok)
	assert.Equal(t, "mike", assignee.Name)
}

func TestExtractAssigneeShouldHandle(t *testing.T) {
	assignee, ok := ExtractAssignee("I think dana should take the migration work")
	require.True(t, ok)
	assert.Equal(t, "dana", assignee.Name)
}

func TestExtractAssigneeNone(t *testing.T) {
	_, ok := ExtractAssignee("the deploy finished without errors")
	assert.False(t, ok)
}

func TestExtractDueDateToday(t *testing.T) {
	due := ExtractDueDate("need this done today", wednesday)
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2025, 6, 11, 17, 0, 0, 0, time.UTC), *due)
}

func TestExtractDueDateTomorrow(t *testing.T) {
	due := ExtractDueDate("ship it tomorrow", wednesday)
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2025, 6, 12, 17, 0, 0, 0, time.UTC), *due)
}

func TestExtractDueDateThisWeek(t *testing.T) {
	due := ExtractDueDate("let's close this out this week", wednesday)
	require.NotNil(t, due)
	// Friday of the same week at end of day
	assert.Equal(t, time.Date(2025, 6, 13, 17, 0, 0, 0, time.UTC), *due)
}

func TestExtractDueDateThisWeekOnFriday(t *testing.T) {
	friday := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	due := ExtractDueDate("wrap up by end of week", friday)
	require.NotNil(t, due)
	// Already Friday, rolls to next week's Friday
	assert.Equal(t, time.Date(2025, 6, 20, 17, 0, 0, 0, time.UTC), *due)
}

func TestExtractDueDateNextWeek(t *testing.T) {
	due := ExtractDueDate("we can pick this up next week", wednesday)
	require.NotNil(t, due)
	// Next Monday at start of day
	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), *due)
}

func TestExtractDueDateNextWeekFromSunday(t *testing.T) {
	sunday := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	due := ExtractDueDate("handle it next week", sunday)
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), *due)
}

func TestExtractDueDateWeekdayName(t *testing.T) {
	due := ExtractDueDate("demo is on friday", wednesday)
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2025, 6, 13, 17, 0, 0, 0, time.UTC), *due)
}

func TestExtractDueDateMondayMorning(t *testing.T) {
	due := ExtractDueDate("standup notes due monday", wednesday)
	require.NotNil(t, due)
	// Monday resolves to 09:00, not end of day
	assert.Equal(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), *due)
}

func TestExtractDueDateSameWeekdayRollsForward(t *testing.T) {
	due := ExtractDueDate("sync again on wednesday", wednesday)
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2025, 6, 18, 17, 0, 0, 0, time.UTC), *due)
}

func TestExtractDueDateClockTimeLaterToday(t *testing.T) {
	due := ExtractDueDate("meeting at 3:30 pm", wednesday)
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC), *due)
}

func TestExtractDueDateClockTimePassedMeansTomorrow(t *testing.T) {
	due := ExtractDueDate("call at 8:00 am", wednesday)
	require.NotNil(t, due)
	// 08:00 already passed at now=10:00, so tomorrow
	assert.Equal(t, time.Date(2025, 6, 12, 8, 0, 0, 0, time.UTC), *due)
}

func TestExtractDueDateNone(t *testing.T) {
	assert.Nil(t, ExtractDueDate("no dates mentioned here", wednesday))
}
