package llm

import (
	"context"

	"chatshell/internal/model"
)

// Completer produces the assistant reply for a conversation. Implementations
// return errors wrapping errors.ErrNetwork, errors.ErrTimeout or
// errors.ErrRateLimit so the caller can describe the failure to the user.
type Completer interface {
	RequestCompletion(ctx context.Context, history []model.Message) (string, error)
}
