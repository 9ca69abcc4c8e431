package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	app_errors "chatshell/internal/errors"
	"chatshell/internal/model"
)

// SimulatedCompleter stands in for a real assistant: it waits a fixed delay and
// answers every turn with the same text.
type SimulatedCompleter struct {
	reply string
	delay time.Duration
}

func NewSimulatedCompleter(reply string, delay time.Duration) *SimulatedCompleter {
	return &SimulatedCompleter{reply: reply, delay: delay}
}

func (c *SimulatedCompleter) RequestCompletion(ctx context.Context, _ []model.Message) (string, error) {
	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return c.reply, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", app_errors.ErrTimeout, ctx.Err())
		}
		return "", ctx.Err()
	}
}
