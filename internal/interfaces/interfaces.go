package interfaces

import (
	"context"

	"chatshell/internal/model"
	"chatshell/internal/service"
)

// The API layer depends on these interfaces rather than on the concrete services,
// so handlers can be tested against generated mocks.

// TurnService is the inbound side of the presentation contract: every user intent
// that changes chat state goes through it.
type TurnService interface {
	Submit(ctx context.Context, text string) (*service.Turn, error)
	Retry(ctx context.Context) (*service.Turn, error)
	CancelPending(ctx context.Context) bool
	SelectConversation(ctx context.Context, conversationID string) error
	NewChat(ctx context.Context) error
	AwaitingReply() bool
	Subscribe() (<-chan model.Event, func())
}

// ViewService is the outbound side: read-only views of chat state.
type ViewService interface {
	Snapshot(ctx context.Context) (*model.Snapshot, error)
	Conversations(ctx context.Context) ([]model.ConversationSummary, error)
	Conversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	Tools(ctx context.Context) []model.Tool
}

var (
	_ TurnService = (*service.TurnController)(nil)
	_ ViewService = (*service.ViewService)(nil)
)
