package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiAnswer(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
}

func TestGeminiClassifyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.RawQuery, "key=test-key")

		json.NewEncoder(w).Encode(geminiAnswer(
			`{"is_task": true, "confidence": 0.92, "title": "Fix checkout crash", "task_type": "bug", "priority": "critical"}`))
	}))
	defer srv.Close()

	svc := NewGeminiServiceWithEndpoint("test-key", srv.URL)

	det, err := svc.ClassifyMessage(context.Background(), "checkout is crashing, fix asap", "payments")
	require.NoError(t, err)
	require.NotNil(t, det)

	assert.True(t, det.IsTask)
	assert.Equal(t, 0.92, det.Confidence)
	assert.Equal(t, "Fix checkout crash", det.Title)
	assert.Equal(t, string(ProviderGemini), det.Provider)
}

func TestGeminiUnparseableVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiAnswer("I am not sure what to make of this message."))
	}))
	defer srv.Close()

	svc := NewGeminiServiceWithEndpoint("test-key", srv.URL)

	det, err := svc.ClassifyMessage(context.Background(), "fix the thing", "eng")
	require.NoError(t, err)
	assert.Nil(t, det)
}

func TestGeminiQuotaErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 429, "message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewGeminiServiceWithEndpoint("test-key", srv.URL)

	det, err := svc.ClassifyMessage(context.Background(), "fix the thing", "eng")
	require.Error(t, err)
	assert.Nil(t, det)
	assert.True(t, isQuotaError(err))
}
