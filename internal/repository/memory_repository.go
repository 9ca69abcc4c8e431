package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/patrickmn/go-cache"

	"chatshell/internal/model"
)

type memoryRepository struct {
	// conversations maps id -> *model.Conversation. Items never expire.
	conversations *cache.Cache

	mu    sync.RWMutex
	order []string
}

// NewMemoryRepository returns a process-lifetime Repository backed by go-cache.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		conversations: cache.New(cache.NoExpiration, 0),
	}
}

func (r *memoryRepository) InsertConversation(_ context.Context, conv *model.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.conversations.Add(conv.ID, conv.Clone(), cache.NoExpiration); err != nil {
		return fmt.Errorf("could not insert conversation %s: %w", conv.ID, err)
	}
	r.order = append([]string{conv.ID}, r.order...)
	return nil
}

func (r *memoryRepository) AppendConversation(_ context.Context, conv *model.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.conversations.Add(conv.ID, conv.Clone(), cache.NoExpiration); err != nil {
		return fmt.Errorf("could not append conversation %s: %w", conv.ID, err)
	}
	r.order = append(r.order, conv.ID)
	return nil
}

func (r *memoryRepository) GetConversation(_ context.Context, conversationID string) (*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conv, ok := r.lookup(conversationID)
	if !ok {
		return nil, ErrNotFound
	}
	return conv.Clone(), nil
}

func (r *memoryRepository) ListConversations(_ context.Context) ([]*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Conversation, 0, len(r.order))
	for _, id := range r.order {
		if conv, ok := r.lookup(id); ok {
			out = append(out, conv.Clone())
		}
	}
	return out, nil
}

func (r *memoryRepository) AppendMessage(_ context.Context, conversationID string, msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.lookup(conversationID)
	if !ok {
		return ErrNotFound
	}
	conv.Messages = append(conv.Messages, *msg)
	conv.UpdatedAt = msg.CreatedAt
	return nil
}

func (r *memoryRepository) lookup(conversationID string) (*model.Conversation, bool) {
	item, found := r.conversations.Get(conversationID)
	if !found {
		return nil, false
	}
	return item.(*model.Conversation), true
}
