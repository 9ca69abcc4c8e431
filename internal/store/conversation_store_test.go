package store_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "chatshell/internal/errors"
	"chatshell/internal/model"
	"chatshell/internal/repository"
	"chatshell/internal/store"
)

// steppingClock returns a clock that advances one second on every call, so
// timestamps are strictly increasing and easy to reason about.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func setupStore(t *testing.T) *store.ConversationStore {
	t.Helper()
	start := time.Date(2025, 1, 23, 10, 0, 0, 0, time.UTC)
	return store.NewConversationStore(repository.NewMemoryRepository(), store.WithClock(steppingClock(start)))
}

func TestConversationStore_CreateConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates an active conversation with one user message", func(t *testing.T) {
		s := setupStore(t)

		id, err := s.CreateConversation(ctx, "short")
		require.NoError(t, err)
		assert.Equal(t, id, s.ActiveID())

		conv, err := s.Active(ctx)
		require.NoError(t, err)
		require.Len(t, conv.Messages, 1)
		assert.Equal(t, model.RoleUser, conv.Messages[0].Role)
		assert.Equal(t, "short", conv.Messages[0].Content)
		assert.Equal(t, "short", conv.Title)
		assert.True(t, conv.UpdatedAt.Equal(conv.Messages[0].CreatedAt))
	})

	t.Run("Truncates long titles to 50 characters plus ellipsis", func(t *testing.T) {
		s := setupStore(t)
		text := strings.Repeat("x", 60)

		id, err := s.CreateConversation(ctx, text)
		require.NoError(t, err)

		conv, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("x", 50)+"...", conv.Title)
		assert.Equal(t, text, conv.Messages[0].Content)
	})

	t.Run("Inserts at the head of the collection", func(t *testing.T) {
		s := setupStore(t)
		first, err := s.CreateConversation(ctx, "first")
		require.NoError(t, err)
		second, err := s.CreateConversation(ctx, "second")
		require.NoError(t, err)

		convs, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, convs, 2)
		assert.Equal(t, second, convs[0].ID)
		assert.Equal(t, first, convs[1].ID)
	})
}

func TestConversationStore_AppendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Appends and bumps updatedAt without reordering", func(t *testing.T) {
		s := setupStore(t)
		oldest, err := s.CreateConversation(ctx, "oldest")
		require.NoError(t, err)
		newest, err := s.CreateConversation(ctx, "newest")
		require.NoError(t, err)

		msg, err := s.AppendMessage(ctx, oldest, model.RoleAssistant, "reply")
		require.NoError(t, err)

		conv, err := s.Get(ctx, oldest)
		require.NoError(t, err)
		require.Len(t, conv.Messages, 2)
		assert.Equal(t, msg.ID, conv.Messages[1].ID)
		assert.True(t, conv.UpdatedAt.Equal(msg.CreatedAt))

		convs, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, newest, convs[0].ID)
	})

	t.Run("Failure - Unknown conversation", func(t *testing.T) {
		s := setupStore(t)
		_, err := s.AppendMessage(ctx, "missing", model.RoleUser, "hello")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})

	t.Run("Failure - Unknown role", func(t *testing.T) {
		s := setupStore(t)
		id, err := s.CreateConversation(ctx, "hello")
		require.NoError(t, err)
		_, err = s.AppendMessage(ctx, id, model.Role("system"), "hi")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("AppendFailure marks the message as failed", func(t *testing.T) {
		s := setupStore(t)
		id, err := s.CreateConversation(ctx, "hello")
		require.NoError(t, err)

		msg, err := s.AppendFailure(ctx, id, "could not reach the assistant")
		require.NoError(t, err)
		assert.True(t, msg.Failed)
		assert.Equal(t, model.RoleAssistant, msg.Role)
	})
}

func TestConversationStore_SetActive(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	id, err := s.CreateConversation(ctx, "hello")
	require.NoError(t, err)

	require.NoError(t, s.SetActive(ctx, ""))
	active, err := s.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	require.NoError(t, s.SetActive(ctx, id))
	assert.Equal(t, id, s.ActiveID())

	err = s.SetActive(ctx, "missing")
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
	assert.Equal(t, id, s.ActiveID(), "a failed switch keeps the previous active conversation")
}

func TestConversationStore_Seed(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 21, 9, 20, 0, 0, time.UTC)

	t.Run("Keeps seed order and leaves no conversation active", func(t *testing.T) {
		s := setupStore(t)
		seed := []model.Conversation{
			{ID: "1", Title: "one", CreatedAt: ts, UpdatedAt: ts, Messages: []model.Message{{ID: "m1", Role: model.RoleUser, Content: "one", CreatedAt: ts}}},
			{ID: "2", Title: "two", CreatedAt: ts, UpdatedAt: ts, Messages: []model.Message{{ID: "m2", Role: model.RoleUser, Content: "two", CreatedAt: ts}}},
		}
		require.NoError(t, s.Seed(ctx, seed))

		convs, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, convs, 2)
		assert.Equal(t, "1", convs[0].ID)
		assert.Empty(t, s.ActiveID())
	})

	t.Run("Raises updatedAt to the last message", func(t *testing.T) {
		s := setupStore(t)
		later := ts.Add(2 * time.Minute)
		seed := []model.Conversation{{
			ID: "1", Title: "one", CreatedAt: ts, UpdatedAt: ts,
			Messages: []model.Message{
				{ID: "m1", Role: model.RoleUser, Content: "one", CreatedAt: ts},
				{ID: "m2", Role: model.RoleAssistant, Content: "two", CreatedAt: later},
			},
		}}
		require.NoError(t, s.Seed(ctx, seed))

		conv, err := s.Get(ctx, "1")
		require.NoError(t, err)
		assert.True(t, conv.UpdatedAt.Equal(later))
	})

	t.Run("Failure - Empty conversation", func(t *testing.T) {
		s := setupStore(t)
		err := s.Seed(ctx, []model.Conversation{{ID: "empty"}})
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})
}
