package service

import (
	"context"
	"slices"
	"time"

	"chatshell/internal/model"
	"chatshell/internal/store"
)

// ViewService builds the read model the presentation layer renders from. It never
// mutates the store.
type ViewService struct {
	store   *store.ConversationStore
	turns   *TurnController
	tools   []model.Tool
	welcome model.Message
	now     func() time.Time
}

type ViewOption func(*ViewService)

// WithClock overrides the time source used for sidebar time labels.
func WithClock(now func() time.Time) ViewOption {
	return func(v *ViewService) { v.now = now }
}

func NewViewService(s *store.ConversationStore, turns *TurnController, tools []model.Tool, welcome model.Message, opts ...ViewOption) *ViewService {
	v := &ViewService{store: s, turns: turns, tools: tools, welcome: welcome, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Snapshot returns everything needed to render the chat screen. The welcome
// message is only included in the new-chat state.
func (v *ViewService) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	// Read before the store: a turn only stops awaiting after its outcome is
	// recorded, so a stale flag can only err toward "awaiting".
	awaiting := v.turns.AwaitingReply()
	active, err := v.store.Active(ctx)
	if err != nil {
		return nil, err
	}
	summaries, err := v.Conversations(ctx)
	if err != nil {
		return nil, err
	}

	snap := &model.Snapshot{
		Active:        active,
		Conversations: summaries,
		AwaitingReply: awaiting,
	}
	if active == nil {
		welcome := v.welcome
		welcome.CreatedAt = v.now().UTC()
		snap.Welcome = &welcome
	}
	return snap, nil
}

// Conversations returns the sidebar list, most recently updated first. The order
// is derived on every call; the stored collection is left as is.
func (v *ViewService) Conversations(ctx context.Context) ([]model.ConversationSummary, error) {
	convs, err := v.store.List(ctx)
	if err != nil {
		return nil, err
	}

	now := v.now()
	summaries := make([]model.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summaries = append(summaries, model.ConversationSummary{
			ID:           conv.ID,
			Title:        conv.Title,
			UpdatedAt:    conv.UpdatedAt,
			MessageCount: len(conv.Messages),
			TimeLabel:    TimeLabel(now, conv.UpdatedAt),
		})
	}
	// Stable, so equal timestamps keep collection order.
	slices.SortStableFunc(summaries, func(a, b model.ConversationSummary) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return summaries, nil
}

func (v *ViewService) Conversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	return v.store.Get(ctx, conversationID)
}

func (v *ViewService) Tools(_ context.Context) []model.Tool {
	return slices.Clone(v.tools)
}

// TimeLabel formats t for the sidebar relative to now: the clock time within a
// day, "Yesterday" within two days, the date otherwise.
func TimeLabel(now, t time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	local := t.In(now.Location())
	switch {
	case diff < 24*time.Hour:
		return local.Format("15:04")
	case diff < 48*time.Hour:
		return "Yesterday"
	default:
		return local.Format("Jan 2, 2006")
	}
}
