package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

// GeminiService implements Classifier using the Gemini generateContent API
type GeminiService struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:   apiKey,
		endpoint: defaultGeminiEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// NewGeminiServiceWithEndpoint overrides the API endpoint, used in tests.
func NewGeminiServiceWithEndpoint(apiKey, endpoint string) *GeminiService {
	svc := NewGeminiService(apiKey)
	svc.endpoint = endpoint
	return svc
}

func (g *GeminiService) ClassifyMessage(ctx context.Context, text, contextLabel string) (*Detection, error) {
	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": classifyPrompt(text, contextLabel)}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.endpoint+"?key="+g.apiKey, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no answer returned")
	}

	det := parseDetection(result.Candidates[0].Content.Parts[0].Text)
	if det == nil {
		// Unparseable verdicts count as "not a task", not as provider failure.
		log.Printf("[AI] Gemini returned unparseable verdict for message: %.50s", text)
		return nil, nil
	}
	det.Provider = string(ProviderGemini)
	return det, nil
}
