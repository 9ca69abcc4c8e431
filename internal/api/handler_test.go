// Black-box tests: only the exported API of the package is exercised.
package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatshell/internal/api"
	app_errors "chatshell/internal/errors"
	"chatshell/internal/interfaces/mocks"
	"chatshell/internal/model"
	"chatshell/internal/service"
)

// setupChatHandler builds a handler on top of fresh service mocks.
func setupChatHandler(t *testing.T) (*api.ChatHandler, *mocks.MockTurnService, *mocks.MockViewService) {
	mockTurns := mocks.NewMockTurnService(t)
	mockViews := mocks.NewMockViewService(t)
	return api.NewChatHandler(mockTurns, mockViews), mockTurns, mockViews
}

// addChiURLParams injects URL parameters (e.g. `{conversationID}`) into the
// request context the way the chi router does, so `chi.URLParam` works when a
// handler is called directly.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

// TestChatHandler_GetState tests the GET /v1/state endpoint.
func TestChatHandler_GetState(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, _, mockViews := setupChatHandler(t)
		snap := &model.Snapshot{
			Conversations: []model.ConversationSummary{{ID: "1", Title: "Help with React components"}},
			Welcome:       &model.Message{ID: "welcome", Role: model.RoleAssistant, Content: "Hello!"},
		}
		mockViews.On("Snapshot", mock.Anything).Return(snap, nil).Once()

		// ACT
		req := httptest.NewRequest(http.MethodGet, "/v1/state", nil)
		rr := httptest.NewRecorder()
		handler.GetState(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		var got model.Snapshot
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Nil(t, got.Active)
		assert.Equal(t, "Hello!", got.Welcome.Content)
		assert.Len(t, got.Conversations, 1)
	})

	t.Run("Failure - Service returns error", func(t *testing.T) {
		// ARRANGE
		handler, _, mockViews := setupChatHandler(t)
		mockViews.On("Snapshot", mock.Anything).Return(nil, errors.New("boom")).Once()

		// ACT
		req := httptest.NewRequest(http.MethodGet, "/v1/state", nil)
		rr := httptest.NewRecorder()
		handler.GetState(rr, req)

		// ASSERT: internal details are not leaked to the client.
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "unexpected internal server error")
		assert.NotContains(t, rr.Body.String(), "boom")
	})
}

// TestChatHandler_GetConversations tests the GET /v1/conversations endpoint.
func TestChatHandler_GetConversations(t *testing.T) {
	// ARRANGE
	handler, _, mockViews := setupChatHandler(t)
	ts := time.Date(2025, 1, 23, 10, 31, 0, 0, time.UTC)
	expected := []model.ConversationSummary{
		{ID: "1", Title: "Help with React components", UpdatedAt: ts, MessageCount: 2, TimeLabel: "10:31"},
		{ID: "2", Title: "Urdu translation project", UpdatedAt: ts.Add(-time.Hour), MessageCount: 2, TimeLabel: "09:31"},
	}
	mockViews.On("Conversations", mock.Anything).Return(expected, nil).Once()

	// ACT
	req := httptest.NewRequest(http.MethodGet, "/v1/conversations", nil)
	rr := httptest.NewRecorder()
	handler.GetConversations(rr, req)

	// ASSERT
	assert.Equal(t, http.StatusOK, rr.Code)
	var got []model.ConversationSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, expected, got)
}

// TestChatHandler_GetConversation tests the GET /v1/conversations/{conversationID} endpoint.
func TestChatHandler_GetConversation(t *testing.T) {
	conversationID := "test-conversation-id"

	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		handler, _, mockViews := setupChatHandler(t)
		mockViews.On("Conversation", mock.Anything, conversationID).Return(&model.Conversation{ID: conversationID}, nil).Once()

		// ACT
		req := httptest.NewRequest(http.MethodGet, "/v1/conversations/"+conversationID, nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.GetConversation(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), conversationID)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// ARRANGE
		handler, _, mockViews := setupChatHandler(t)
		mockViews.On("Conversation", mock.Anything, conversationID).Return(nil, app_errors.ErrNotFound).Once()

		// ACT
		req := httptest.NewRequest(http.MethodGet, "/v1/conversations/"+conversationID, nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.GetConversation(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

// TestChatHandler_SelectConversation tests the POST /v1/conversations/{conversationID}/select endpoint.
func TestChatHandler_SelectConversation(t *testing.T) {
	conversationID := "2"

	t.Run("Success", func(t *testing.T) {
		handler, mockTurns, _ := setupChatHandler(t)
		mockTurns.On("SelectConversation", mock.Anything, conversationID).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/conversations/"+conversationID+"/select", nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.SelectConversation(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockTurns, _ := setupChatHandler(t)
		mockTurns.On("SelectConversation", mock.Anything, conversationID).Return(app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/conversations/"+conversationID+"/select", nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.SelectConversation(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

// TestChatHandler_NewChat tests the POST /v1/conversations/new endpoint.
func TestChatHandler_NewChat(t *testing.T) {
	handler, mockTurns, _ := setupChatHandler(t)
	mockTurns.On("NewChat", mock.Anything).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/v1/conversations/new", nil)
	rr := httptest.NewRecorder()
	handler.NewChat(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

// TestChatHandler_SubmitMessage tests the POST /v1/messages endpoint.
//
// GOAL: Verify JSON parsing and validation, and that each turn controller
// outcome maps to the right status code.
func TestChatHandler_SubmitMessage(t *testing.T) {
	t.Run("Success - Turn started", func(t *testing.T) {
		// ARRANGE
		handler, mockTurns, _ := setupChatHandler(t)
		turn := &service.Turn{ID: "turn-1", ConversationID: "conv-1"}
		mockTurns.On("Submit", mock.Anything, "hello").Return(turn, nil).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(`{"content":"hello"}`))
		rr := httptest.NewRecorder()
		handler.SubmitMessage(rr, req)

		// ASSERT
		assert.Equal(t, http.StatusAccepted, rr.Code)
		var got service.Turn
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "turn-1", got.ID)
		assert.Equal(t, "conv-1", got.ConversationID)
	})

	t.Run("Blank input is ignored with 204", func(t *testing.T) {
		// ARRANGE
		handler, mockTurns, _ := setupChatHandler(t)
		mockTurns.On("Submit", mock.Anything, "   ").Return(nil, app_errors.ErrBlankInput).Once()

		// ACT
		req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(`{"content":"   "}`))
		rr := httptest.NewRecorder()
		handler.SubmitMessage(rr, req)

		// ASSERT: nothing is surfaced to the user.
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("Failure - Reply already pending", func(t *testing.T) {
		handler, mockTurns, _ := setupChatHandler(t)
		mockTurns.On("Submit", mock.Anything, "again").Return(nil, app_errors.ErrAwaitingReply).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(`{"content":"again"}`))
		rr := httptest.NewRecorder()
		handler.SubmitMessage(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "already pending")
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		// No expectations on the mocks: the service must not be reached.
		handler, _, _ := setupChatHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(`{"content":`))
		rr := httptest.NewRecorder()
		handler.SubmitMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid request payload")
	})

	t.Run("Failure - Validation Error", func(t *testing.T) {
		handler, _, _ := setupChatHandler(t)
		body, err := json.Marshal(api.SubmitMessageRequest{Content: strings.Repeat("a", 32001)})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(string(body)))
		rr := httptest.NewRecorder()
		handler.SubmitMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Field 'Content' failed on the 'max' tag")
	})
}

// TestChatHandler_RetryTurn tests the POST /v1/turns/retry endpoint.
func TestChatHandler_RetryTurn(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockTurns, _ := setupChatHandler(t)
		mockTurns.On("Retry", mock.Anything).Return(&service.Turn{ID: "turn-2", ConversationID: "conv-1"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/turns/retry", nil)
		rr := httptest.NewRecorder()
		handler.RetryTurn(rr, req)

		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.Contains(t, rr.Body.String(), "turn-2")
	})

	t.Run("Failure - Nothing to retry", func(t *testing.T) {
		handler, mockTurns, _ := setupChatHandler(t)
		mockTurns.On("Retry", mock.Anything).Return(nil, app_errors.ErrNothingToRetry).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/turns/retry", nil)
		rr := httptest.NewRecorder()
		handler.RetryTurn(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

// TestChatHandler_CancelPendingTurn tests the DELETE /v1/turns/pending endpoint.
func TestChatHandler_CancelPendingTurn(t *testing.T) {
	for _, cancelled := range []bool{true, false} {
		handler, mockTurns, _ := setupChatHandler(t)
		mockTurns.On("CancelPending", mock.Anything).Return(cancelled).Once()

		req := httptest.NewRequest(http.MethodDelete, "/v1/turns/pending", nil)
		rr := httptest.NewRecorder()
		handler.CancelPendingTurn(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.CancelResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, cancelled, got.Cancelled)
	}
}

// TestChatHandler_GetTools tests the GET /v1/tools endpoint.
func TestChatHandler_GetTools(t *testing.T) {
	handler, _, mockViews := setupChatHandler(t)
	tools := []model.Tool{{ID: "translator", Name: "Translator", Icon: "Languages", Category: "Language"}}
	mockViews.On("Tools", mock.Anything).Return(tools).Once()

	req := httptest.NewRequest(http.MethodGet, "/v1/tools", nil)
	rr := httptest.NewRecorder()
	handler.GetTools(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []model.Tool
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, tools, got)
}
