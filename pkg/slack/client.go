package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultAPIRoot = "https://slack.com/api"

// APIError is a non-2xx or ok=false answer from the messaging API.
// Rate limiting is signalled distinctly so callers can back off instead
// of treating the source as broken.
type APIError struct {
	Code       string
	StatusCode int
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("slack api error: %s (status %d)", e.Code, e.StatusCode)
	}
	return fmt.Sprintf("slack api error: status %d", e.StatusCode)
}

// IsRateLimited reports whether err is a rate-limit signal from the API.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == "ratelimited" || apiErr.StatusCode == http.StatusTooManyRequests
}

// IsAccessDenied reports whether err means the conversation cannot be
// read with the current credentials.
func IsAccessDenied(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case "channel_not_found", "not_in_channel", "missing_scope", "access_denied", "not_authed", "invalid_auth":
		return true
	}
	return false
}

// Conversation is a channel or direct conversation visible to a user.
type Conversation struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsIM     bool   `json:"is_im"`
	IsMPIM   bool   `json:"is_mpim"`
	IsMember bool   `json:"is_member"`
	UserID   string `json:"user"` // IM partner for direct conversations
}

// Message is one history entry as returned by the API, newest first.
type Message struct {
	Type     string `json:"type"`
	Subtype  string `json:"subtype"`
	User     string `json:"user"`
	BotID    string `json:"bot_id"`
	Text     string `json:"text"`
	TS       string `json:"ts"`
	ThreadTS string `json:"thread_ts"`
}

// HistoryPage is a single page of conversation history plus the cursor
// for the next page, empty when exhausted.
type HistoryPage struct {
	Messages   []Message
	NextCursor string
}

// Member is a workspace user, used to resolve assignee display names.
type Member struct {
	ID          string
	Name        string
	DisplayName string
	RealName    string
	IsBot       bool
}

type Option func(*Client)

func WithAPIRoot(root string) Option {
	return func(c *Client) { c.apiRoot = strings.TrimRight(root, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// Client is a minimal messaging-API client for the calls the scan
// pipeline needs. A token-bucket limiter smooths request bursts; the
// server's own rate-limit answers are surfaced as typed errors for the
// caller's backoff loop.
type Client struct {
	token      string
	apiRoot    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:      token,
		apiRoot:    defaultAPIRoot,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(1), 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthTest returns the bot's own user ID, needed to exclude the
// assistant's messages and conversations from scans.
func (c *Client) AuthTest(ctx context.Context) (string, error) {
	var resp struct {
		UserID string `json:"user_id"`
	}
	if err := c.call(ctx, "auth.test", url.Values{}, &resp); err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// ListConversationsForUser returns every conversation of the given kinds
// the user belongs to, paginating transparently.
// kinds is a comma-separated list, e.g. "public_channel,private_channel"
// or "im,mpim".
func (c *Client) ListConversationsForUser(ctx context.Context, userID, kinds string) ([]Conversation, error) {
	var all []Conversation
	cursor := ""

	for {
		params := url.Values{
			"user":  {userID},
			"types": {kinds},
			"limit": {"200"},
		}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var resp struct {
			Channels         []Conversation `json:"channels"`
			ResponseMetadata struct {
				NextCursor string `json:"next_cursor"`
			} `json:"response_metadata"`
		}
		if err := c.call(ctx, "users.conversations", params, &resp); err != nil {
			return nil, err
		}

		all = append(all, resp.Channels...)
		cursor = resp.ResponseMetadata.NextCursor
		if cursor == "" {
			return all, nil
		}
	}
}

// ConversationHistory fetches one page of recent messages for a
// conversation. Callers drive pagination with the returned cursor.
func (c *Client) ConversationHistory(ctx context.Context, channelID string, limit int, cursor string) (*HistoryPage, error) {
	if limit <= 0 {
		limit = 100
	}
	params := url.Values{
		"channel": {channelID},
		"limit":   {strconv.Itoa(limit)},
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var resp struct {
		Messages         []Message `json:"messages"`
		ResponseMetadata struct {
			NextCursor string `json:"next_cursor"`
		} `json:"response_metadata"`
	}
	if err := c.call(ctx, "conversations.history", params, &resp); err != nil {
		return nil, err
	}

	return &HistoryPage{
		Messages:   resp.Messages,
		NextCursor: resp.ResponseMetadata.NextCursor,
	}, nil
}

// ConversationInfo returns metadata for a single conversation.
func (c *Client) ConversationInfo(ctx context.Context, channelID string) (*Conversation, error) {
	var resp struct {
		Channel Conversation `json:"channel"`
	}
	if err := c.call(ctx, "conversations.info", url.Values{"channel": {channelID}}, &resp); err != nil {
		return nil, err
	}
	return &resp.Channel, nil
}

// UserInfo returns the best display name for a user.
func (c *Client) UserInfo(ctx context.Context, userID string) (string, error) {
	var resp struct {
		User struct {
			Name    string `json:"name"`
			Profile struct {
				DisplayName string `json:"display_name"`
				RealName    string `json:"real_name"`
			} `json:"profile"`
		} `json:"user"`
	}
	if err := c.call(ctx, "users.info", url.Values{"user": {userID}}, &resp); err != nil {
		return "", err
	}
	if resp.User.Profile.DisplayName != "" {
		return resp.User.Profile.DisplayName, nil
	}
	if resp.User.Profile.RealName != "" {
		return resp.User.Profile.RealName, nil
	}
	return resp.User.Name, nil
}

// ListMembers returns the workspace member list, paginating transparently.
func (c *Client) ListMembers(ctx context.Context) ([]Member, error) {
	var all []Member
	cursor := ""

	for {
		params := url.Values{"limit": {"200"}}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var resp struct {
			Members []struct {
				ID      string `json:"id"`
				Name    string `json:"name"`
				IsBot   bool   `json:"is_bot"`
				Profile struct {
					DisplayName string `json:"display_name"`
					RealName    string `json:"real_name"`
				} `json:"profile"`
			} `json:"members"`
			ResponseMetadata struct {
				NextCursor string `json:"next_cursor"`
			} `json:"response_metadata"`
		}
		if err := c.call(ctx, "users.list", params, &resp); err != nil {
			return nil, err
		}

		for _, m := range resp.Members {
			all = append(all, Member{
				ID:          m.ID,
				Name:        m.Name,
				DisplayName: m.Profile.DisplayName,
				RealName:    m.Profile.RealName,
				IsBot:       m.IsBot,
			})
		}

		cursor = resp.ResponseMetadata.NextCursor
		if cursor == "" {
			return all, nil
		}
	}
}

// PostMessage sends a chat message to a channel or user.
func (c *Client) PostMessage(ctx context.Context, channelID, text string) error {
	params := url.Values{
		"channel": {channelID},
		"text":    {text},
	}
	return c.call(ctx, "chat.postMessage", params, &struct{}{})
}

// MessageLink builds the deep link back to an original message.
func (c *Client) MessageLink(channelID, ts string) string {
	return fmt.Sprintf("https://slack.com/archives/%s/p%s", channelID, strings.ReplaceAll(ts, ".", ""))
}

func (c *Client) call(ctx context.Context, method string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiRoot+"/"+method, strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return &APIError{
			Code:       "ratelimited",
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode}
	}

	var ack struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &ack); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !ack.OK {
		return &APIError{
			Code:       ack.Error,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	return json.Unmarshal(body, out)
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
