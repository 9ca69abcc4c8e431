// Package store holds the single source of truth for the chat screen: the
// ordered conversation collection and the pointer to the active conversation.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "chatshell/internal/errors"
	"chatshell/internal/model"
	"chatshell/internal/repository"
)

// ConversationStore owns the conversation collection and the active conversation id.
// An empty active id is the "new chat" state.
type ConversationStore struct {
	repo repository.Repository
	now  func() time.Time

	mu       sync.RWMutex
	activeID string
}

// Option configures a ConversationStore.
type Option func(*ConversationStore)

// WithClock overrides the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *ConversationStore) { s.now = now }
}

func NewConversationStore(repo repository.Repository, opts ...Option) *ConversationStore {
	s := &ConversationStore{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateConversation starts a conversation from its first user message, puts it at
// the head of the collection and makes it active. The caller guarantees a
// non-empty, trimmed message.
func (s *ConversationStore) CreateConversation(ctx context.Context, firstMessage string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UTC()
	conv := &model.Conversation{
		ID:        uuid.NewString(),
		Title:     model.DeriveTitle(firstMessage),
		CreatedAt: ts,
		UpdatedAt: ts,
		Messages: []model.Message{
			{ID: uuid.NewString(), Role: model.RoleUser, Content: firstMessage, CreatedAt: ts},
		},
	}
	if err := s.repo.InsertConversation(ctx, conv); err != nil {
		return "", fmt.Errorf("could not create conversation: %w", err)
	}
	s.activeID = conv.ID
	return conv.ID, nil
}

// AppendMessage appends a message to the conversation and bumps its updatedAt.
// The conversation keeps its position in the collection.
func (s *ConversationStore) AppendMessage(ctx context.Context, conversationID string, role model.Role, content string) (*model.Message, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", app_errors.ErrValidation, role)
	}
	return s.append(ctx, conversationID, model.Message{Role: role, Content: content})
}

// AppendFailure appends the assistant error indicator shown in place of a reply.
func (s *ConversationStore) AppendFailure(ctx context.Context, conversationID, content string) (*model.Message, error) {
	return s.append(ctx, conversationID, model.Message{Role: model.RoleAssistant, Content: content, Failed: true})
}

func (s *ConversationStore) append(ctx context.Context, conversationID string, msg model.Message) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = uuid.NewString()
	msg.CreatedAt = s.now().UTC()
	if err := s.repo.AppendMessage(ctx, conversationID, &msg); err != nil {
		return nil, translate(err, conversationID)
	}
	return &msg, nil
}

// Active returns the active conversation, or nil in the new-chat state.
func (s *ConversationStore) Active(ctx context.Context) (*model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeID == "" {
		return nil, nil
	}
	conv, err := s.repo.GetConversation(ctx, s.activeID)
	if err != nil {
		return nil, translate(err, s.activeID)
	}
	return conv, nil
}

func (s *ConversationStore) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// SetActive switches the active conversation. An empty id clears it.
func (s *ConversationStore) SetActive(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conversationID != "" {
		if _, err := s.repo.GetConversation(ctx, conversationID); err != nil {
			return translate(err, conversationID)
		}
	}
	s.activeID = conversationID
	return nil
}

func (s *ConversationStore) Get(ctx context.Context, conversationID string) (*model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, translate(err, conversationID)
	}
	return conv, nil
}

// List returns the collection in storage order (head = most recently created).
// Display order is derived by the caller.
func (s *ConversationStore) List(ctx context.Context) ([]*model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.ListConversations(ctx)
}

// Seed loads pre-existing conversations at the tail of the collection, keeping
// their order. It is meant for bootstrap, before any turn runs.
func (s *ConversationStore) Seed(ctx context.Context, conversations []model.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range conversations {
		conv := conversations[i]
		if len(conv.Messages) == 0 {
			return fmt.Errorf("%w: seed conversation %s has no messages", app_errors.ErrValidation, conv.ID)
		}
		if last := conv.LastMessage(); conv.UpdatedAt.Before(last.CreatedAt) {
			conv.UpdatedAt = last.CreatedAt
		}
		if err := s.repo.AppendConversation(ctx, &conv); err != nil {
			return fmt.Errorf("could not seed conversation %s: %w", conv.ID, err)
		}
	}
	return nil
}

func translate(err error, conversationID string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("conversation %s: %w", conversationID, app_errors.ErrNotFound)
	}
	return err
}
