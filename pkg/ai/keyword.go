package ai

import (
	"context"
	"strings"
)

// FallbackConfidence is the fixed, conservative score assigned to
// keyword-detected tasks when the primary provider is unavailable.
const FallbackConfidence = 0.65

var taskKeywords = []string{
	"need to", "have to", "must", "should", "todo", "task",
	"deadline", "due", "urgent", "asap", "please", "can you",
	"fix", "update", "create", "review", "check", "send",
	"call", "email", "meeting", "schedule", "prepare",
	"we need", "i need", "let's", "remember to", "don't forget",
	"action item", "follow up", "next step", "work on",
	"finish", "complete", "implement", "handle", "take care",
	"make sure", "ensure", "organize", "plan", "discuss",
}

// Checked in order; first match wins, so "urgent" maps to critical
// rather than high.
var priorityKeywords = []struct {
	priority string
	keywords []string
}{
	{"critical", []string{"urgent", "asap", "critical", "emergency", "immediately"}},
	{"high", []string{"important", "priority", "soon", "deadline"}},
	{"medium", []string{"should", "need to", "please"}},
	{"low", []string{"when you can", "sometime", "eventually"}},
}

var typeKeywords = []struct {
	taskType string
	keywords []string
}{
	{"bug", []string{"bug", "error", "broken", "fix", "issue"}},
	{"feature", []string{"feature", "add", "create", "build", "implement"}},
	{"meeting", []string{"meeting", "call", "discuss", "sync"}},
	{"review", []string{"review", "check", "approve", "feedback"}},
	{"deadline", []string{"deadline", "due", "by"}},
	{"urgent", []string{"urgent", "asap", "emergency"}},
}

// KeywordClassifier is the deterministic fallback used when the primary
// provider is unreachable or out of quota. It never needs the network
// and never fails; a message without task keywords yields no detection.
type KeywordClassifier struct {
	Confidence float64
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{Confidence: FallbackConfidence}
}

func (k *KeywordClassifier) ClassifyMessage(_ context.Context, text, _ string) (*Detection, error) {
	lower := strings.ToLower(strings.TrimSpace(text))

	hasKeyword := false
	for _, kw := range taskKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return nil, nil
	}

	priority := "medium"
	for _, pk := range priorityKeywords {
		if containsAny(lower, pk.keywords) {
			priority = pk.priority
			break
		}
	}

	taskType := "general"
	for _, tk := range typeKeywords {
		if containsAny(lower, tk.keywords) {
			taskType = tk.taskType
			break
		}
	}

	return &Detection{
		IsTask:     true,
		Confidence: k.Confidence,
		Title:      truncateTitle(text, 60),
		TaskType:   taskType,
		Priority:   priority,
		Provider:   "keyword",
	}, nil
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func truncateTitle(text string, max int) string {
	title := strings.Join(strings.Fields(strings.TrimSpace(text)), " ")
	if len(title) > max {
		title = title[:max] + "..."
	}
	return title
}
