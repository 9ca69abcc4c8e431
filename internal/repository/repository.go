package repository

import (
	"context"

	"chatshell/internal/model"
)

// Repository stores the ordered conversation collection. The head of the
// collection is the most recently created conversation; appending a message
// never changes a conversation's position.
type Repository interface {
	// InsertConversation adds conv at the head of the collection.
	InsertConversation(ctx context.Context, conv *model.Conversation) error
	// AppendConversation adds conv at the tail of the collection. Used for seeding.
	AppendConversation(ctx context.Context, conv *model.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	// ListConversations returns every conversation, with messages, in collection order.
	ListConversations(ctx context.Context) ([]*model.Conversation, error)
	// AppendMessage appends msg and sets the conversation's updated_at to msg.CreatedAt.
	AppendMessage(ctx context.Context, conversationID string, msg *model.Message) error
}
