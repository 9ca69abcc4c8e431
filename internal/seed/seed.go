// Package seed provides the demo content the chat screen starts with: a few
// pre-existing conversations, the custom tools listed in the sidebar and the
// welcome message shown in the new-chat state.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"chatshell/internal/model"
)

//go:embed mock_data.json
var mockData []byte

// Data is the decoded demo content.
type Data struct {
	Conversations []model.Conversation `json:"conversations"`
	Tools         []model.Tool         `json:"tools"`
	Welcome       model.Message        `json:"welcome"`
}

// Load decodes the embedded demo content. Conversations come back in
// collection order, newest first.
func Load() (*Data, error) {
	var data Data
	if err := json.Unmarshal(mockData, &data); err != nil {
		return nil, fmt.Errorf("could not decode seed data: %w", err)
	}
	for i := range data.Conversations {
		conv := &data.Conversations[i]
		if last := conv.LastMessage(); last != nil && conv.UpdatedAt.IsZero() {
			conv.UpdatedAt = last.CreatedAt
		}
	}
	return &data, nil
}
