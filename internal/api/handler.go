package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "chatshell/internal/errors"
	"chatshell/internal/interfaces"
)

// ChatHandler serves the chat screen: read views of the conversations and the
// user intents that drive the turn controller.
type ChatHandler struct {
	turns interfaces.TurnService
	views interfaces.ViewService
}

func NewChatHandler(turns interfaces.TurnService, views interfaces.ViewService) *ChatHandler {
	return &ChatHandler{turns: turns, views: views}
}

// GetState godoc
// @Summary      Get chat screen state
// @Description  Returns the active conversation, the sidebar list sorted by last update, the awaiting-reply flag and, in the new-chat state, the welcome message.
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  model.Snapshot
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/state [get]
func (h *ChatHandler) GetState(w http.ResponseWriter, r *http.Request) {
	snap, err := h.views.Snapshot(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// GetConversations godoc
// @Summary      List conversations
// @Description  Returns the sidebar entries, most recently updated first.
// @Tags         Conversations
// @Produce      json
// @Success      200  {array}   model.ConversationSummary
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/conversations [get]
func (h *ChatHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.views.Conversations(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, summaries)
}

// GetConversation godoc
// @Summary      Get a conversation
// @Description  Returns a conversation with its full transcript.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  model.Conversation
// @Failure      404             {object}  ErrorResponse
// @Failure      500             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [get]
func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	conv, err := h.views.Conversation(r.Context(), conversationID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// SelectConversation godoc
// @Summary      Select a conversation
// @Description  Makes a conversation active. A pending reply is not cancelled and still lands in the conversation it was asked in.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  StatusResponse
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID}/select [post]
func (h *ChatHandler) SelectConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if err := h.turns.SelectConversation(r.Context(), conversationID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// NewChat godoc
// @Summary      Start a new chat
// @Description  Clears the active conversation. The next message starts a new conversation.
// @Tags         Conversations
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/conversations/new [post]
func (h *ChatHandler) NewChat(w http.ResponseWriter, r *http.Request) {
	if err := h.turns.NewChat(r.Context()); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// SubmitMessage godoc
// @Summary      Send a message
// @Description  Records the user's message in the active conversation (or a new one) and starts waiting for the assistant reply. Blank messages are ignored.
// @Tags         Turns
// @Accept       json
// @Produce      json
// @Param        messageRequest  body      SubmitMessageRequest  true  "Message"
// @Success      202             {object}  service.Turn
// @Success      204             "Blank message ignored"
// @Failure      400             {object}  ErrorResponse
// @Failure      409             {object}  ErrorResponse  "A reply is already pending"
// @Router       /v1/messages [post]
func (h *ChatHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req SubmitMessageRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	turn, err := h.turns.Submit(r.Context(), req.Content)
	if errors.Is(err, app_errors.ErrBlankInput) {
		slog.Debug("Ignoring blank message")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, turn)
}

// RetryTurn godoc
// @Summary      Retry the failed turn
// @Description  Asks for the reply again after a failed or cancelled turn, without adding a user message.
// @Tags         Turns
// @Produce      json
// @Success      202  {object}  service.Turn
// @Failure      409  {object}  ErrorResponse
// @Router       /v1/turns/retry [post]
func (h *ChatHandler) RetryTurn(w http.ResponseWriter, r *http.Request) {
	turn, err := h.turns.Retry(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, turn)
}

// CancelPendingTurn godoc
// @Summary      Cancel the pending reply
// @Description  Abandons the turn waiting for a reply, if any. A reply arriving later is discarded.
// @Tags         Turns
// @Produce      json
// @Success      200  {object}  CancelResponse
// @Router       /v1/turns/pending [delete]
func (h *ChatHandler) CancelPendingTurn(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, CancelResponse{Cancelled: h.turns.CancelPending(r.Context())})
}

// GetTools godoc
// @Summary      List custom tools
// @Description  Returns the custom tools shown in the sidebar.
// @Tags         Tools
// @Produce      json
// @Success      200  {array}  model.Tool
// @Router       /v1/tools [get]
func (h *ChatHandler) GetTools(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.views.Tools(r.Context()))
}
