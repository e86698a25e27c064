package ai

import (
	"context"
	"log"
	"net"
	"strings"
)

// FallbackClassifier routes classification to the primary provider and
// degrades to the deterministic keyword classifier when the provider is
// unreachable or out of quota, so a saturated provider slows a scan down
// to heuristics instead of stalling it.
type FallbackClassifier struct {
	primary Classifier
	keyword *KeywordClassifier
}

func NewFallbackClassifier(primary Classifier, keyword *KeywordClassifier) *FallbackClassifier {
	if keyword == nil {
		keyword = NewKeywordClassifier()
	}
	return &FallbackClassifier{
		primary: primary,
		keyword: keyword,
	}
}

func (f *FallbackClassifier) ClassifyMessage(ctx context.Context, text, contextLabel string) (*Detection, error) {
	if f.primary != nil {
		det, err := f.primary.ClassifyMessage(ctx, text, contextLabel)
		if err == nil {
			return det, nil
		}

		if isQuotaError(err) {
			log.Printf("[AI] Provider quota exhausted: %v, falling back to keyword classifier", err)
		} else if isConnectionError(err) {
			log.Printf("[AI] Provider connection failed: %v, falling back to keyword classifier", err)
		} else {
			log.Printf("[AI] Provider error: %v, falling back to keyword classifier", err)
		}
	}

	return f.keyword.ClassifyMessage(ctx, text, contextLabel)
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"eof",
	}

	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
		"resource_exhausted",
	}

	for _, indicator := range quotaIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}
