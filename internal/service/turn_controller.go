package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "chatshell/internal/errors"
	"chatshell/internal/llm"
	"chatshell/internal/model"
	"chatshell/internal/store"
)

// Texts of the failed assistant message appended in place of a reply.
const (
	FailureNetwork   = "I couldn't reach the assistant. Check your connection and try again."
	FailureTimeout   = "The assistant took too long to answer. Please try again."
	FailureRateLimit = "The assistant is receiving too many requests right now. Please wait a moment and try again."
	FailureUnknown   = "Something went wrong while generating a reply. Please try again."
)

// Turn is one user turn waiting for its assistant reply. The conversation it
// belongs to is fixed when the turn starts.
type Turn struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	StartedAt      time.Time `json:"started_at"`

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Done is closed once the turn has been resolved, failed or cancelled.
func (t *Turn) Done() <-chan struct{} {
	return t.done
}

// Err reports how the turn ended. It is only meaningful after Done is closed:
// nil for a delivered reply, context.Canceled for a cancelled turn, the
// completion error otherwise.
func (t *Turn) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// TurnController runs the IDLE -> AWAITING_REPLY -> IDLE cycle of a user turn.
// After bootstrap it is the only writer of the conversation store.
type TurnController struct {
	store     *store.ConversationStore
	completer llm.Completer
	notifier  *Notifier
	timeout   time.Duration

	mu          sync.Mutex
	pending     *Turn
	retryTarget string
	wg          sync.WaitGroup
}

func NewTurnController(s *store.ConversationStore, completer llm.Completer, notifier *Notifier, timeout time.Duration) *TurnController {
	return &TurnController{
		store:     s,
		completer: completer,
		notifier:  notifier,
		timeout:   timeout,
	}
}

// Submit records the user's message and starts waiting for the reply. Blank
// input returns ErrBlankInput and changes nothing. A submit while a reply is
// pending returns ErrAwaitingReply.
func (c *TurnController) Submit(ctx context.Context, text string) (*Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, app_errors.ErrBlankInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		return nil, app_errors.ErrAwaitingReply
	}

	conversationID := c.store.ActiveID()
	if conversationID == "" {
		id, err := c.store.CreateConversation(ctx, text)
		if err != nil {
			return nil, err
		}
		conversationID = id
		c.publishLocked(model.EventConversationCreated, conversationID, "")
	} else if _, err := c.store.AppendMessage(ctx, conversationID, model.RoleUser, text); err != nil {
		return nil, fmt.Errorf("could not record user message: %w", err)
	}

	c.retryTarget = ""
	return c.startLocked(conversationID), nil
}

// Retry asks for a reply again for the conversation whose last turn failed or
// was cancelled, without adding a user message.
func (c *TurnController) Retry(ctx context.Context) (*Turn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		return nil, app_errors.ErrAwaitingReply
	}
	if c.retryTarget == "" {
		return nil, app_errors.ErrNothingToRetry
	}
	if _, err := c.store.Get(ctx, c.retryTarget); err != nil {
		return nil, err
	}

	conversationID := c.retryTarget
	c.retryTarget = ""
	slog.Info("Retrying turn", "conversation_id", conversationID)
	return c.startLocked(conversationID), nil
}

// CancelPending abandons the in-flight turn, if any, and returns to IDLE. A reply
// arriving later for that turn is dropped. It reports whether a turn was cancelled.
func (c *TurnController) CancelPending(_ context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	turn := c.pending
	if turn == nil {
		return false
	}
	c.pending = nil
	c.retryTarget = turn.ConversationID
	turn.cancel()

	slog.Info("Cancelled pending turn", "turn_id", turn.ID, "conversation_id", turn.ConversationID)
	c.publishLocked(model.EventTurnCancelled, turn.ConversationID, turn.ID)
	return true
}

// SelectConversation makes an existing conversation active. A pending turn keeps
// running and its reply still lands in the conversation it was started in.
func (c *TurnController) SelectConversation(ctx context.Context, conversationID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.SetActive(ctx, conversationID); err != nil {
		return err
	}
	c.publishLocked(model.EventConversationSelected, conversationID, "")
	return nil
}

// NewChat clears the active conversation; the next submit starts a new one.
func (c *TurnController) NewChat(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.SetActive(ctx, ""); err != nil {
		return err
	}
	c.publishLocked(model.EventChatReset, "", "")
	return nil
}

func (c *TurnController) AwaitingReply() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

func (c *TurnController) Subscribe() (<-chan model.Event, func()) {
	return c.notifier.Subscribe()
}

// Shutdown cancels the pending turn and waits for its goroutine to finish.
func (c *TurnController) Shutdown(ctx context.Context) error {
	c.CancelPending(ctx)

	finished := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *TurnController) startLocked(conversationID string) *Turn {
	turnCtx, cancel := context.WithTimeout(context.Background(), c.timeout)
	turn := &Turn{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		StartedAt:      time.Now().UTC(),
		cancel:         cancel,
		done:           make(chan struct{}),
	}
	c.pending = turn

	slog.Debug("Turn started", "turn_id", turn.ID, "conversation_id", conversationID)
	c.publishLocked(model.EventTurnStarted, conversationID, turn.ID)

	c.wg.Add(1)
	go c.run(turnCtx, turn)
	return turn
}

func (c *TurnController) run(ctx context.Context, turn *Turn) {
	defer c.wg.Done()
	defer close(turn.done)
	defer turn.cancel()

	reply, err := c.complete(ctx, turn.ConversationID)
	c.resolve(turn, reply, err)
}

func (c *TurnController) complete(ctx context.Context, conversationID string) (string, error) {
	conv, err := c.store.Get(ctx, conversationID)
	if err != nil {
		return "", err
	}
	history := make([]model.Message, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		if !msg.Failed {
			history = append(history, msg)
		}
	}
	return c.completer.RequestCompletion(ctx, history)
}

// resolve applies the outcome of a completion to the conversation captured when
// the turn started. Outcomes of turns that are no longer pending are dropped.
func (c *TurnController) resolve(turn *Turn, reply string, completionErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != turn {
		turn.err = context.Canceled
		slog.Debug("Dropping stale turn outcome", "turn_id", turn.ID, "error", completionErr)
		return
	}
	c.pending = nil

	// The turn context may already be expired; the store write must still happen.
	ctx := context.Background()

	if completionErr == nil {
		if _, err := c.store.AppendMessage(ctx, turn.ConversationID, model.RoleAssistant, reply); err != nil {
			turn.err = err
			slog.Error("Failed to record assistant reply", "turn_id", turn.ID, "conversation_id", turn.ConversationID, "error", err)
			c.publishLocked(model.EventTurnFailed, turn.ConversationID, turn.ID)
			return
		}
		slog.Info("Turn resolved", "turn_id", turn.ID, "conversation_id", turn.ConversationID)
		c.publishLocked(model.EventTurnResolved, turn.ConversationID, turn.ID)
		return
	}

	turn.err = completionErr
	slog.Warn("Completion failed", "turn_id", turn.ID, "conversation_id", turn.ConversationID, "error", completionErr)
	if _, err := c.store.AppendFailure(ctx, turn.ConversationID, failureText(completionErr)); err != nil {
		slog.Error("Failed to record completion failure", "turn_id", turn.ID, "conversation_id", turn.ConversationID, "error", err)
	} else {
		c.retryTarget = turn.ConversationID
	}
	c.publishLocked(model.EventTurnFailed, turn.ConversationID, turn.ID)
}

func (c *TurnController) publishLocked(eventType model.EventType, conversationID, turnID string) {
	c.notifier.Publish(model.Event{
		Type:           eventType,
		ConversationID: conversationID,
		TurnID:         turnID,
		AwaitingReply:  c.pending != nil,
		At:             time.Now().UTC(),
	})
}

func failureText(err error) string {
	switch {
	case errors.Is(err, app_errors.ErrRateLimit):
		return FailureRateLimit
	case errors.Is(err, app_errors.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	case errors.Is(err, app_errors.ErrNetwork):
		return FailureNetwork
	default:
		return FailureUnknown
	}
}
