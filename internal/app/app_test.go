package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatshell/internal/config"
	"chatshell/internal/llm"
)

func testConfig() *config.Config {
	return &config.Config{
		AppPort:           0,
		LogLevel:          "DEBUG",
		StoreDriver:       config.StoreMemory,
		LLMProvider:       config.ProviderMock,
		ReplyDelay:        time.Millisecond,
		MockReply:         config.DefaultMockReply,
		CompletionTimeout: time.Minute,
		SeedMockData:      true,
		ShutdownTimeout:   time.Second,
	}
}

func TestNewApp(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory store with seed data", func(t *testing.T) {
		app, err := NewApp(testConfig())
		require.NoError(t, err)
		defer func() { require.NoError(t, app.Close()) }()

		assert.Nil(t, app.DB)
		assert.NotNil(t, app.Server)
		convs, err := app.Store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, convs, 3)
	})

	t.Run("SQLite store without seed data", func(t *testing.T) {
		cfg := testConfig()
		cfg.StoreDriver = config.StoreSQLite
		cfg.DatabasePath = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
		cfg.SeedMockData = false

		app, err := NewApp(cfg)
		require.NoError(t, err)
		defer func() { require.NoError(t, app.Close()) }()

		assert.NotNil(t, app.DB)
		convs, err := app.Store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, convs)
	})

	t.Run("Ollama provider", func(t *testing.T) {
		ollamaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer ollamaServer.Close()

		cfg := testConfig()
		cfg.LLMProvider = config.ProviderOllama
		cfg.OllamaURL = ollamaServer.URL
		cfg.OllamaModel = "llama3.2"

		app, err := NewApp(cfg)
		require.NoError(t, err)
		assert.NotNil(t, app.Turns)
	})

	t.Run("Failure - Unknown store driver", func(t *testing.T) {
		cfg := testConfig()
		cfg.StoreDriver = "redis"
		_, err := NewApp(cfg)
		assert.Error(t, err)
	})
}

func TestApp_Serve(t *testing.T) {
	cfg := testConfig()
	cfg.ReplyDelay = time.Hour
	app, err := NewApp(cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, app.Close()) }()

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- app.Serve(ctx) }()

	// A pending turn must not hold up shutdown.
	_, err = app.Turns.Submit(context.Background(), "hello")
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	assert.False(t, app.Turns.AwaitingReply())
}

func TestWaitForOllama(t *testing.T) {
	interval, tries := ollamaReadyInterval, ollamaReadyTries
	ollamaReadyInterval, ollamaReadyTries = time.Millisecond, 3
	defer func() { ollamaReadyInterval, ollamaReadyTries = interval, tries }()

	t.Run("Ready", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		assert.NoError(t, waitForOllama(context.Background(), llm.NewOllamaCompleter(server.URL, "m"), server.URL))
	})

	t.Run("Gives up after the configured tries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		assert.Error(t, waitForOllama(context.Background(), llm.NewOllamaCompleter(url, "m"), url))
	})
}

func TestSetupLogger(t *testing.T) {
	for _, level := range []string{"debug", "WARN", "error", "unknown"} {
		assert.NotPanics(t, func() { setupLogger(level) })
	}
}
