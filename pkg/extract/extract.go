package extract

import (
	"regexp"
	"strings"
	"time"
)

// Assignee is a user reference pulled out of message text. UserID is set
// only when the message carried an explicit mention marker; otherwise the
// display name must be resolved against the workspace member list.
type Assignee struct {
	UserID string
	Name   string
}

var (
	mentionPattern    = regexp.MustCompile(`<@([A-Z0-9]+)>`)
	atNamePattern     = regexp.MustCompile(`@(\w+)`)
	politePattern     = regexp.MustCompile(`(?i)\b(\w+)\s+(?:please|can you|could you)`)
	assignedToPattern = regexp.MustCompile(`(?i)assign(?:ed)?\s+to\s+(\w+)`)
	shouldPattern     = regexp.MustCompile(`(?i)\b(\w+)\s+should\s+(?:handle|do|take)`)

	clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm|AM|PM)?`)
)

// ExtractAssignee tries the assignment patterns in order of reliability:
// explicit mention, "name please/can you", "assigned to name",
// "name should handle". First match wins.
func ExtractAssignee(text string) (Assignee, bool) {
	if m := mentionPattern.FindStringSubmatch(text); m != nil {
		return Assignee{UserID: m[1]}, true
	}
	if m := atNamePattern.FindStringSubmatch(text); m != nil {
		return Assignee{Name: m[1]}, true
	}
	for _, p := range []*regexp.Regexp{politePattern, assignedToPattern, shouldPattern} {
		if m := p.FindStringSubmatch(text); m != nil {
			return Assignee{Name: strings.TrimSpace(m[1])}, true
		}
	}
	return Assignee{}, false
}

// ExtractDueDate resolves due-date expressions in text relative to now.
// Relative terms use a fixed time-of-day convention: 17:00 for end-of-day
// deadlines, 09:00 for start-of-week markers. A bare clock time resolves
// to today if not yet passed, else tomorrow. Returns nil when no pattern
// matches; absence of a date is never invented.
func ExtractDueDate(text string, now time.Time) *time.Time {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "today"):
		return timePtr(atHour(now, 17))
	case strings.Contains(lower, "tomorrow"):
		return timePtr(atHour(now.AddDate(0, 0, 1), 17))
	case strings.Contains(lower, "this week"), strings.Contains(lower, "end of week"):
		daysUntilFriday := int(time.Friday - now.Weekday())
		if daysUntilFriday <= 0 {
			daysUntilFriday += 7
		}
		return timePtr(atHour(now.AddDate(0, 0, daysUntilFriday), 17))
	case strings.Contains(lower, "next week"):
		daysUntilMonday := 7 - (int(now.Weekday())+6)%7
		return timePtr(atHour(now.AddDate(0, 0, daysUntilMonday), 9))
	}

	if due := matchWeekday(lower, now); due != nil {
		return due
	}

	if m := clockPattern.FindStringSubmatch(text); m != nil {
		hour := atoiSafe(m[1])
		minute := atoiSafe(m[2])
		meridiem := strings.ToLower(m[3])

		if meridiem == "pm" && hour != 12 {
			hour += 12
		} else if meridiem == "am" && hour == 12 {
			hour = 0
		}
		if hour > 23 || minute > 59 {
			return nil
		}

		due := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		// Time already passed today means tomorrow.
		if !due.After(now) {
			due = due.AddDate(0, 0, 1)
		}
		return &due
	}

	return nil
}

var weekdays = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

func matchWeekday(lower string, now time.Time) *time.Time {
	for _, wd := range weekdays {
		name, day := wd.name, wd.day
		if !strings.Contains(lower, name) {
			continue
		}
		daysUntil := (int(day) - int(now.Weekday()) + 7) % 7
		if daysUntil == 0 {
			daysUntil = 7 // same weekday means next week's
		}
		hour := 17
		if day == time.Monday {
			hour = 9 // start-of-week marker
		}
		return timePtr(atHour(now.AddDate(0, 0, daysUntil), hour))
	}
	return nil
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
