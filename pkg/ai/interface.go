package ai

import "context"

// Detection is a classifier verdict for one message. A nil *Detection
// with a nil error means the message produced no usable verdict
// (malformed provider output) and is treated as not a task.
type Detection struct {
	IsTask      bool    `json:"is_task"`
	Confidence  float64 `json:"confidence"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TaskType    string  `json:"task_type"`
	Priority    string  `json:"priority"`
	Reasoning   string  `json:"reasoning"`
	Provider    string  `json:"-"`
}

// Classifier is the interface for task classification providers.
// Implement this interface to add new providers (Gemini, OpenAI, ...).
type Classifier interface {
	ClassifyMessage(ctx context.Context, text, contextLabel string) (*Detection, error)
}

// ProviderType represents the classification provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOpenAI ProviderType = "openai"
	ProviderAuto   ProviderType = "auto"
)
