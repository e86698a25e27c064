package ai

import "fmt"

// classifyPrompt asks the provider to judge actionability and answer
// with a single JSON object. Both providers share the prompt so their
// answers stay comparable.
func classifyPrompt(text, contextLabel string) string {
	return fmt.Sprintf(`Analyze this chat message from %s and determine if it contains an actionable task, bug report, or todo item.

Message: "%s"

Respond with a JSON object containing:
{
	"is_task": boolean,
	"confidence": float,
	"title": "string",
	"description": "string",
	"task_type": "string",
	"priority": "string",
	"reasoning": "string"
}

Task types:
- bug: Bug reports, errors, broken functionality
- feature: New features, enhancements, development requests
- meeting: Meetings, calls, scheduled events
- review: Code reviews, document reviews, approvals needed
- deadline: Items with specific deadlines or time constraints
- urgent: Urgent or critical items needing immediate attention
- general: General tasks, todos, or action items

Priority levels:
- critical: Urgent, breaking issues, immediate action required
- high: Important items, should be done soon
- medium: Standard priority items
- low: Nice to have, can be done later

confidence is a score between 0.0 and 1.0. title is at most 100 characters.
Only mark as task if the message clearly indicates something actionable that needs to be done.
Questions, discussions, or informational messages should not be marked as tasks.`, contextLabel, text)
}
