package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIService implements Classifier using the OpenAI chat completions API
type OpenAIService struct {
	client openai.Client
	model  string
}

func NewOpenAIService(apiKey, model string) *OpenAIService {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIService{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (o *OpenAIService) ClassifyMessage(ctx context.Context, text, contextLabel string) (*Detection, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(classifyPrompt(text, contextLabel)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no answer returned")
	}

	det := parseDetection(resp.Choices[0].Message.Content)
	if det == nil {
		log.Printf("[AI] OpenAI returned unparseable verdict for message: %.50s", text)
		return nil, nil
	}
	det.Provider = string(ProviderOpenAI)
	return det, nil
}
