package ai

import "fmt"

// Config holds classification provider configuration
type Config struct {
	Provider ProviderType // "gemini" or "openai"

	// Gemini config
	GeminiAPIKey string

	// OpenAI config
	OpenAIAPIKey string
	OpenAIModel  string // e.g., "gpt-4o-mini"
}

// NewClassifier creates a Classifier based on the config. Every provider is
// wrapped with the keyword fallback so quota or connection failures degrade
// to pattern matching instead of losing the message.
func NewClassifier(cfg Config) (Classifier, error) {
	primary, err := newPrimary(cfg)
	if err != nil {
		return nil, err
	}
	return NewFallbackClassifier(primary, NewKeywordClassifier()), nil
}

func newPrimary(cfg Config) (Classifier, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return NewGeminiService(cfg.GeminiAPIKey), nil

	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil

	default:
		// Default to Gemini if API key is available, otherwise OpenAI.
		if cfg.GeminiAPIKey != "" {
			return NewGeminiService(cfg.GeminiAPIKey), nil
		}
		if cfg.OpenAIAPIKey != "" {
			return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
		}
		return nil, fmt.Errorf("no classification provider configured")
	}
}
