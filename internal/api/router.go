package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "chatshell/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(chatHandler *ChatHandler, streamHandler *StreamHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness probe.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Plain JSON routes get a request timeout so a client cannot hold them open.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			r.Get("/state", chatHandler.GetState)

			// --- Conversations ---
			r.Get("/conversations", chatHandler.GetConversations)
			r.Post("/conversations/new", chatHandler.NewChat)
			r.Get("/conversations/{conversationID}", chatHandler.GetConversation)
			r.Post("/conversations/{conversationID}/select", chatHandler.SelectConversation)

			// --- Turns ---
			r.Post("/messages", chatHandler.SubmitMessage)
			r.Post("/turns/retry", chatHandler.RetryTurn)
			r.Delete("/turns/pending", chatHandler.CancelPendingTurn)

			r.Get("/tools", chatHandler.GetTools)
		})

		// The event stream stays open for the life of the client and must not time out.
		r.Group(func(r chi.Router) {
			r.Get("/events", streamHandler.HandleEvents)
		})
	})

	return r
}
