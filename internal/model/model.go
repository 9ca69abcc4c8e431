package model

import (
	"time"
	"unicode/utf8"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// TitleMaxRunes is the number of characters of the first user message kept in a conversation title.
const TitleMaxRunes = 50

// Message is a single entry in a conversation transcript. Messages are never mutated after creation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	// Failed marks the assistant message appended in place of a reply when a completion fails.
	Failed bool `json:"failed,omitempty"`
}

// Conversation stores the metadata and transcript of one chat.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// Clone returns a copy whose Messages slice does not alias c's.
func (c *Conversation) Clone() *Conversation {
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return &out
}

// LastMessage returns the most recent message, or nil for an empty transcript.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// DeriveTitle builds a conversation title from its first user message.
func DeriveTitle(firstMessage string) string {
	if utf8.RuneCountInString(firstMessage) <= TitleMaxRunes {
		return firstMessage
	}
	runes := []rune(firstMessage)
	return string(runes[:TitleMaxRunes]) + "..."
}

// ConversationSummary is the sidebar entry for a conversation.
type ConversationSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
	TimeLabel    string    `json:"time_label"`
}

// Tool is a custom tool shortcut listed in the sidebar.
type Tool struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Snapshot is everything the presentation layer needs to render the chat screen.
type Snapshot struct {
	Active        *Conversation         `json:"active"`
	Conversations []ConversationSummary `json:"conversations"`
	AwaitingReply bool                  `json:"awaiting_reply"`
	// Welcome is only set when no conversation is active.
	Welcome *Message `json:"welcome,omitempty"`
}

// EventType names a state change published to subscribers.
type EventType string

const (
	EventConversationCreated  EventType = "conversation.created"
	EventConversationSelected EventType = "conversation.selected"
	EventChatReset            EventType = "chat.reset"
	EventTurnStarted          EventType = "turn.started"
	EventTurnResolved         EventType = "turn.resolved"
	EventTurnFailed           EventType = "turn.failed"
	EventTurnCancelled        EventType = "turn.cancelled"
)

// Event is a single state change notification streamed to the presentation layer.
type Event struct {
	Type           EventType `json:"type"`
	ConversationID string    `json:"conversation_id,omitempty"`
	TurnID         string    `json:"turn_id,omitempty"`
	AwaitingReply  bool      `json:"awaiting_reply"`
	At             time.Time `json:"at"`
}
