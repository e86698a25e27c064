package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	detectdomain "taskbot-backend/internal/detect/domain"
	detectusecase "taskbot-backend/internal/detect/usecase"
	"taskbot-backend/internal/scan/domain"
	"taskbot-backend/internal/scan/repository"
	tododomain "taskbot-backend/internal/todo/domain"
	todousecase "taskbot-backend/internal/todo/usecase"
	"taskbot-backend/pkg/fuzzy"
	"taskbot-backend/pkg/slack"
)

// WorkspaceAPI is the slice of the workspace client the scanner needs
type WorkspaceAPI interface {
	MessageLister
	ListConversationsForUser(ctx context.Context, userID, kinds string) ([]slack.Conversation, error)
	ConversationInfo(ctx context.Context, channelID string) (*slack.Conversation, error)
	UserInfo(ctx context.Context, userID string) (string, error)
	ListMembers(ctx context.Context) ([]slack.Member, error)
	MessageLink(channelID, ts string) string
}

// Notifier delivers scan outcomes back into the workspace
type Notifier interface {
	ScanCompleted(ctx context.Context, userID string, result *domain.ScanResult)
	TodoCreated(ctx context.Context, sourceID string, todo *tododomain.Todo)
}

// MessageEvent is an inbound realtime message from the events webhook
type MessageEvent struct {
	SourceID   string `json:"channel"`
	SourceKind string `json:"channel_type"`
	UserID     string `json:"user"`
	BotID      string `json:"bot_id"`
	Subtype    string `json:"subtype"`
	Text       string `json:"text"`
	TS         string `json:"ts"`
}

// Scanner walks every conversation a user belongs to, detects task-like
// messages, deduplicates the candidates and persists the survivors.
type Scanner struct {
	api       WorkspaceAPI
	adapter   *SourceAdapter
	detector  *detectusecase.Detector
	todos     todousecase.TodoUsecase
	configs   repository.SourceConfigRepository
	notifier  Notifier
	policy    detectdomain.Policy
	botUserID string
}

// NewScanner creates a Scanner
func NewScanner(api WorkspaceAPI, adapter *SourceAdapter, detector *detectusecase.Detector,
	todos todousecase.TodoUsecase, configs repository.SourceConfigRepository,
	notifier Notifier, policy detectdomain.Policy, botUserID string) *Scanner {
	return &Scanner{
		api:       api,
		adapter:   adapter,
		detector:  detector,
		todos:     todos,
		configs:   configs,
		notifier:  notifier,
		policy:    policy,
		botUserID: botUserID,
	}
}

// RunPersonalScan scans every channel and DM the user belongs to and turns
// detected tasks into todos owned by that user. A source that cannot be read
// is recorded in the result; the scan never aborts because of one source.
func (s *Scanner) RunPersonalScan(ctx context.Context, userID string) (*domain.ScanResult, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	sources, err := s.listSources(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate sources: %w", err)
	}

	log.Printf("[Scanner] Scanning %d sources for user %s", len(sources), userID)

	result := &domain.ScanResult{SourceCount: len(sources)}
	names := newNameResolver(s.api)

	for _, src := range sources {
		cands, err := s.scanSource(ctx, src, names)
		if err != nil {
			var unavailable *SourceUnavailableError
			reason := "transport_error"
			if errors.As(err, &unavailable) {
				reason = unavailable.Reason
			}
			log.Printf("[Scanner] Skipping source %s (%s): %v", src.ID, reason, err)
			result.SourcesFailed++
			result.FailedSources = append(result.FailedSources, domain.FailedSource{
				SourceID: src.ID,
				Name:     src.Name,
				Reason:   reason,
			})
			continue
		}
		result.Candidates = append(result.Candidates, cands...)
	}

	result.Candidates = Deduplicate(result.Candidates, s.policy.DedupSimilarity)
	result.CandidatesFound = len(result.Candidates)

	for _, cand := range result.Candidates {
		created, _, err := s.todos.PersistCandidate(userID, cand)
		if err != nil {
			log.Printf("[Scanner] Failed to persist candidate %q: %v", cand.Title, err)
			continue
		}
		if created {
			result.TodosCreated++
		}
	}

	log.Printf("[Scanner] Scan complete for user %s: %d candidates, %d todos created, %d sources failed",
		userID, result.CandidatesFound, result.TodosCreated, result.SourcesFailed)

	if s.notifier != nil {
		s.notifier.ScanCompleted(ctx, userID, result)
	}

	return result, nil
}

// HandleMessageEvent runs detection on a single realtime message. Realtime
// messages use the stricter floor since there is no dedup pass to clean up
// after a noisy classifier.
func (s *Scanner) HandleMessageEvent(ctx context.Context, ev *MessageEvent) (*tododomain.Todo, error) {
	if ev.BotID != "" || ev.UserID == "" || ev.UserID == s.botUserID || ev.Subtype != "" {
		return nil, nil
	}
	if len(strings.TrimSpace(ev.Text)) < 10 {
		return nil, nil
	}

	config, err := s.configs.GetOrDefault(ev.SourceID)
	if err != nil {
		return nil, err
	}
	if !config.AutoDetect {
		return nil, nil
	}

	src, err := s.describeSource(ctx, ev)
	if err != nil {
		return nil, err
	}

	cand := s.detector.Detect(ctx, ev.Text, src.Name)
	if cand == nil || cand.Confidence < s.policy.RealtimeFloor {
		return nil, nil
	}

	s.fillOrigin(cand, src, ev.Text, ev.TS, ev.UserID)
	s.resolveAssignee(ctx, cand, newNameResolver(s.api))

	created, todo, err := s.todos.PersistCandidate(ev.UserID, cand)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}

	if config.NotifyOnCreate && s.notifier != nil {
		s.notifier.TodoCreated(ctx, ev.SourceID, todo)
	}

	return todo, nil
}

func (s *Scanner) listSources(ctx context.Context, userID string) ([]domain.Source, error) {
	var sources []domain.Source

	channels, err := s.api.ListConversationsForUser(ctx, userID, "public_channel,private_channel")
	if err != nil {
		return nil, err
	}
	for _, ch := range channels {
		sources = append(sources, domain.Source{
			ID:   ch.ID,
			Name: ch.Name,
			Kind: detectdomain.SourceKindChannel,
		})
	}

	dms, err := s.api.ListConversationsForUser(ctx, userID, "im,mpim")
	if err != nil {
		return nil, err
	}
	for _, dm := range dms {
		// Skip the DM with the bot itself
		if dm.IsIM && dm.UserID == s.botUserID {
			continue
		}
		name := dm.Name
		if name == "" {
			name = dm.UserID
		}
		sources = append(sources, domain.Source{
			ID:   dm.ID,
			Name: name,
			Kind: detectdomain.SourceKindDM,
		})
	}

	return sources, nil
}

func (s *Scanner) scanSource(ctx context.Context, src domain.Source, names *nameResolver) ([]*detectdomain.TaskCandidate, error) {
	messages, err := s.adapter.FetchRecent(ctx, src)
	if err != nil {
		return nil, err
	}

	floor := s.policy.FloorFor(src.Kind)
	var cands []*detectdomain.TaskCandidate

	for _, msg := range messages {
		cand := s.detector.Detect(ctx, msg.Text, src.Name)
		if cand == nil || cand.Confidence < floor {
			continue
		}
		s.fillOrigin(cand, src, msg.Text, msg.TS, msg.AuthorID)
		s.resolveAssignee(ctx, cand, names)
		cands = append(cands, cand)
	}

	return cands, nil
}

func (s *Scanner) fillOrigin(cand *detectdomain.TaskCandidate, src domain.Source, text, ts, authorID string) {
	cand.SourceKind = src.Kind
	cand.SourceID = src.ID
	cand.SourceName = src.Name
	cand.OriginMessageTS = ts
	cand.OriginMessageLink = s.api.MessageLink(src.ID, ts)
	cand.AuthorID = authorID
}

// resolveAssignee turns an extracted name like "@john" into a workspace user.
// A mention pattern already carries the user ID; plain names go through the
// member directory with typo tolerance.
func (s *Scanner) resolveAssignee(ctx context.Context, cand *detectdomain.TaskCandidate, names *nameResolver) {
	if cand.AssigneeID != "" {
		if name, err := s.api.UserInfo(ctx, cand.AssigneeID); err == nil && name != "" {
			cand.AssigneeName = name
		}
		return
	}
	if cand.AssigneeName == "" {
		return
	}

	member := names.resolve(ctx, cand.AssigneeName)
	if member != nil {
		cand.AssigneeID = member.ID
		cand.AssigneeName = member.Name
	}
}

func (s *Scanner) describeSource(ctx context.Context, ev *MessageEvent) (domain.Source, error) {
	kind := detectdomain.SourceKindChannel
	if ev.SourceKind == "im" || ev.SourceKind == "mpim" {
		kind = detectdomain.SourceKindDM
	}

	src := domain.Source{ID: ev.SourceID, Kind: kind}
	if info, err := s.api.ConversationInfo(ctx, ev.SourceID); err == nil && info != nil {
		src.Name = info.Name
	}
	return src, nil
}

// nameResolver caches the member directory for the duration of one scan
type nameResolver struct {
	api     WorkspaceAPI
	members []slack.Member
	loaded  bool
}

func newNameResolver(api WorkspaceAPI) *nameResolver {
	return &nameResolver{api: api}
}

func (r *nameResolver) resolve(ctx context.Context, name string) *slack.Member {
	if !r.loaded {
		members, err := r.api.ListMembers(ctx)
		if err != nil {
			log.Printf("[Scanner] Failed to list members: %v", err)
			return nil
		}
		for _, m := range members {
			if m.IsBot {
				continue
			}
			r.members = append(r.members, m)
		}
		r.loaded = true
	}

	candidates := make([]string, len(r.members))
	for i, m := range r.members {
		candidates[i] = m.Name
		if m.DisplayName != "" {
			candidates[i] = m.DisplayName
		}
	}

	idx, ok := fuzzy.ClosestName(name, candidates)
	if !ok {
		return nil
	}
	return &r.members[idx]
}
