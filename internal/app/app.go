package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/errgroup"

	"chatshell/internal/api"
	"chatshell/internal/config"
	"chatshell/internal/database"
	"chatshell/internal/llm"
	"chatshell/internal/repository"
	"chatshell/internal/seed"
	"chatshell/internal/service"
	"chatshell/internal/store"
)

var (
	ollamaReadyInterval       = 3 * time.Second
	ollamaReadyTries     uint = 10
	ollamaPingTimeout         = 2 * time.Second
)

// App holds the wired application. DB is nil when the memory store is used.
type App struct {
	Config   *config.Config
	DB       *sql.DB
	Store    *store.ConversationStore
	Notifier *service.Notifier
	Turns    *service.TurnController
	Views    *service.ViewService
	Server   *http.Server
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource(cfg)

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			slog.Error("Failed to release application resources", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		return 1
	}
	slog.Info("Server stopped.")
	return 0
}

// NewApp builds every component from cfg and seeds the store. Nothing is
// listening yet; call Serve.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	repo, err := a.newRepository()
	if err != nil {
		return nil, err
	}

	completer, err := newCompleter(cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	data, err := seed.Load()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Store = store.NewConversationStore(repo)
	if cfg.SeedMockData {
		if err := a.Store.Seed(context.Background(), data.Conversations); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("could not seed conversations: %w", err)
		}
		slog.Info("Seeded demo conversations", "count", len(data.Conversations))
	}

	a.Notifier = service.NewNotifier(service.DefaultSubscriberBuffer)
	a.Turns = service.NewTurnController(a.Store, completer, a.Notifier, cfg.CompletionTimeout)
	a.Views = service.NewViewService(a.Store, a.Turns, data.Tools, data.Welcome)

	chatHandler := api.NewChatHandler(a.Turns, a.Views)
	streamHandler := api.NewStreamHandler(a.Turns, a.Views)
	router := api.NewRouter(chatHandler, streamHandler)

	a.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for the event stream
		IdleTimeout:       120 * time.Second,
	}
	return a, nil
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down and
// cancels any pending turn.
func (a *App) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting server", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
		defer cancel()

		// Open event streams only end when their subscription is closed.
		a.Notifier.Close()
		serverErr := a.Server.Shutdown(shutdownCtx)
		turnsErr := a.Turns.Shutdown(shutdownCtx)
		return errors.Join(serverErr, turnsErr)
	})

	return g.Wait()
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	err := a.DB.Close()
	a.DB = nil
	return err
}

func (a *App) newRepository() (repository.Repository, error) {
	switch a.Config.StoreDriver {
	case config.StoreSQLite:
		db, err := database.InitDB(a.Config.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.DB = db
		slog.Info("Using SQLite conversation store.", "dsn", a.Config.DatabasePath)
		return repository.NewSQLiteRepository(db), nil
	case config.StoreMemory:
		slog.Info("Using in-memory conversation store.")
		return repository.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", a.Config.StoreDriver)
	}
}

func newCompleter(cfg *config.Config) (llm.Completer, error) {
	switch cfg.LLMProvider {
	case config.ProviderOllama:
		completer := llm.NewOllamaCompleter(cfg.OllamaURL, cfg.OllamaModel)
		if err := waitForOllama(context.Background(), completer, cfg.OllamaURL); err != nil {
			// Replies will fail inline and can be retried once Ollama is up.
			slog.Warn("Ollama is not reachable, continuing without it", "url", cfg.OllamaURL, "error", err)
		}
		return completer, nil
	case config.ProviderMock:
		slog.Info("Using simulated assistant replies.", "delay", cfg.ReplyDelay)
		return llm.NewSimulatedCompleter(cfg.MockReply, cfg.ReplyDelay), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.LLMProvider)
	}
}

func logConfigSource(cfg *config.Config) {
	if cfg.ConfigFile != "" {
		slog.Info("Successfully loaded configuration from file.", "file", cfg.ConfigFile)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

type pinger interface {
	Ping(ctx context.Context) error
}

func waitForOllama(ctx context.Context, p pinger, ollamaURL string) error {
	slog.Info("Waiting for Ollama to be ready...", "url", ollamaURL)
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		pingCtx, cancel := context.WithTimeout(ctx, ollamaPingTimeout)
		defer cancel()
		if err := p.Ping(pingCtx); err != nil {
			slog.Debug("Ollama not ready yet, retrying...", "url", ollamaURL, "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(backoff.NewConstantBackOff(ollamaReadyInterval)), backoff.WithMaxTries(ollamaReadyTries))
	if err != nil {
		return err
	}
	slog.Info("Ollama is ready.")
	return nil
}
