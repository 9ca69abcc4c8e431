package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-resty/resty/v2"

	app_errors "chatshell/internal/errors"
	"chatshell/internal/model"
)

// Message is the wire format of a chat message for the Ollama API.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Model   string  `json:"model"`
	Message Message `json:"message"`
	Done    bool    `json:"done"`
}

// OllamaCompleter requests completions from an Ollama server's /api/chat endpoint.
type OllamaCompleter struct {
	client          *resty.Client
	model           string
	maxTries        uint
	initialInterval time.Duration
}

// OllamaOption configures an OllamaCompleter.
type OllamaOption func(*OllamaCompleter)

// WithRateLimitRetries sets how many attempts are made when the server answers 429
// and the first wait between them.
func WithRateLimitRetries(maxTries uint, initialInterval time.Duration) OllamaOption {
	return func(c *OllamaCompleter) {
		c.maxTries = maxTries
		c.initialInterval = initialInterval
	}
}

func NewOllamaCompleter(baseURL, modelName string, opts ...OllamaOption) *OllamaCompleter {
	c := &OllamaCompleter{
		client: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json"),
		model:           modelName,
		maxTries:        3,
		initialInterval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *OllamaCompleter) RequestCompletion(ctx context.Context, history []model.Message) (string, error) {
	req := &chatRequest{Model: c.model, Stream: false}
	for _, msg := range history {
		req.Messages = append(req.Messages, Message{Role: string(msg.Role), Content: msg.Content})
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialInterval

	reply, err := backoff.Retry(ctx, func() (string, error) {
		var out chatResponse
		resp, err := c.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&out).
			ForceContentType("application/json").
			Post("/api/chat")
		if err := classify(resp, err); err != nil {
			if errors.Is(err, app_errors.ErrRateLimit) {
				return "", err
			}
			return "", backoff.Permanent(err)
		}
		if out.Message.Content == "" {
			return "", backoff.Permanent(fmt.Errorf("%w: ollama returned an empty reply", app_errors.ErrNetwork))
		}
		return out.Message.Content, nil
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(c.maxTries))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, app_errors.ErrTimeout) {
			return "", fmt.Errorf("%w: %w", app_errors.ErrTimeout, err)
		}
		return "", err
	}
	return reply, nil
}

// Ping reports whether the Ollama server answers on its root endpoint.
func (c *OllamaCompleter) Ping(ctx context.Context) error {
	resp, err := c.client.R().SetContext(ctx).Get("/")
	if err != nil {
		return fmt.Errorf("%w: %w", app_errors.ErrNetwork, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: ollama returned status %d", app_errors.ErrNetwork, resp.StatusCode())
	}
	return nil
}

func classify(resp *resty.Response, err error) error {
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return fmt.Errorf("%w: %w", app_errors.ErrTimeout, err)
		case errors.Is(err, context.Canceled):
			return err
		default:
			return fmt.Errorf("%w: %w", app_errors.ErrNetwork, err)
		}
	}
	switch code := resp.StatusCode(); {
	case code == http.StatusOK:
		return nil
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: ollama returned status %d", app_errors.ErrRateLimit, code)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w: ollama returned status %d: %s", app_errors.ErrNetwork, code, resp.String())
	default:
		return fmt.Errorf("ollama returned status %d: %s", code, resp.String())
	}
}
