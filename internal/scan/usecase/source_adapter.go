package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	detectdomain "taskbot-backend/internal/detect/domain"
	"taskbot-backend/internal/scan/domain"
	"taskbot-backend/pkg/slack"
)

const (
	maxFetchRetries = 3
	baseRetryDelay  = 1 * time.Second
	maxRetryDelay   = 60 * time.Second
)

// SourceUnavailableError marks a source the scan could not read. The scanner
// records it and moves on to the next source.
type SourceUnavailableError struct {
	SourceID string
	Reason   string
	Err      error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable (%s): %v", e.SourceID, e.Reason, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// MessageLister is the slice of the workspace API the adapter needs
type MessageLister interface {
	ConversationHistory(ctx context.Context, channelID string, limit int, cursor string) (*slack.HistoryPage, error)
}

// SourceAdapter fetches recent history from one source, retrying rate limits
// and dropping messages not worth classifying.
type SourceAdapter struct {
	api       MessageLister
	botUserID string
	policy    detectdomain.Policy
	sleep     func(time.Duration)
}

// NewSourceAdapter creates a SourceAdapter
func NewSourceAdapter(api MessageLister, botUserID string, policy detectdomain.Policy) *SourceAdapter {
	return &SourceAdapter{
		api:       api,
		botUserID: botUserID,
		policy:    policy,
		sleep:     time.Sleep,
	}
}

// FetchRecent pulls up to the per-kind budget of human messages from a source.
// All failures come back as *SourceUnavailableError.
func (a *SourceAdapter) FetchRecent(ctx context.Context, src domain.Source) ([]domain.RawMessage, error) {
	budget := a.policy.FetchLimitFor(src.Kind)
	minLen := a.policy.MinLenFor(src.Kind)

	var messages []domain.RawMessage
	cursor := ""

	for len(messages) < budget {
		pageLimit := budget - len(messages)
		page, err := a.fetchPage(ctx, src.ID, pageLimit, cursor)
		if err != nil {
			return nil, err
		}

		for _, msg := range page.Messages {
			if !a.isScannable(msg, minLen) {
				continue
			}
			messages = append(messages, domain.RawMessage{
				Text:     msg.Text,
				AuthorID: msg.User,
				TS:       msg.TS,
			})
			if len(messages) >= budget {
				break
			}
		}

		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	return messages, nil
}

func (a *SourceAdapter) fetchPage(ctx context.Context, sourceID string, limit int, cursor string) (*slack.HistoryPage, error) {
	var lastErr error

	for attempt := 0; attempt < maxFetchRetries; attempt++ {
		page, err := a.api.ConversationHistory(ctx, sourceID, limit, cursor)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if slack.IsAccessDenied(err) {
			return nil, &SourceUnavailableError{SourceID: sourceID, Reason: "access_denied", Err: err}
		}
		if !slack.IsRateLimited(err) {
			return nil, &SourceUnavailableError{SourceID: sourceID, Reason: "transport_error", Err: err}
		}

		wait := retryDelay(err, attempt)
		log.Printf("[SourceAdapter] Rate limited on %s, waiting %s (attempt %d/%d)", sourceID, wait, attempt+1, maxFetchRetries)

		if attempt < maxFetchRetries-1 {
			select {
			case <-ctx.Done():
				return nil, &SourceUnavailableError{SourceID: sourceID, Reason: "transport_error", Err: ctx.Err()}
			default:
			}
			a.sleep(wait)
		}
	}

	return nil, &SourceUnavailableError{SourceID: sourceID, Reason: "ratelimited", Err: lastErr}
}

func (a *SourceAdapter) isScannable(msg slack.Message, minLen int) bool {
	if msg.BotID != "" || msg.User == a.botUserID || msg.User == "" {
		return false
	}
	if msg.Subtype != "" {
		return false
	}
	if len(strings.TrimSpace(msg.Text)) < minLen {
		return false
	}
	return true
}

func retryDelay(err error, attempt int) time.Duration {
	wait := baseRetryDelay << attempt
	var apiErr *slack.APIError
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		wait = apiErr.RetryAfter
	}
	if wait > maxRetryDelay {
		wait = maxRetryDelay
	}
	return wait
}
