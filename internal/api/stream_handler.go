package api

import (
	"log/slog"
	"net/http"

	"chatshell/internal/interfaces"
)

// StreamHandler pushes chat state changes to the presentation layer over
// Server-Sent Events.
type StreamHandler struct {
	turns interfaces.TurnService
	views interfaces.ViewService
}

func NewStreamHandler(turns interfaces.TurnService, views interfaces.ViewService) *StreamHandler {
	return &StreamHandler{turns: turns, views: views}
}

// HandleEvents godoc
// @Summary      Stream chat events
// @Description  Opens a Server-Sent Events stream. The first message is a "state" event carrying the current snapshot; every later message is a state change named after its type (turn.started, turn.resolved, ...).
// @Tags         Events
// @Produce      text/event-stream
// @Success      200  {object}  model.Event  "Stream of state changes"
// @Failure      500  {object}  ErrorResponse  "Sent as a stream error event"
// @Router       /v1/events [get]
func (h *StreamHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Subscribe before reading the snapshot so no change falls in between.
	events, unsubscribe := h.turns.Subscribe()
	defer unsubscribe()

	snap, err := h.views.Snapshot(r.Context())
	if err != nil {
		slog.Error("Could not build snapshot for event stream", "error", err)
		sendStreamError(w, "Could not load chat state")
		return
	}
	if err := writeStreamEvent(w, "state", snap); err != nil {
		slog.Warn("Could not write to event stream, client likely disconnected.", "error", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			slog.Info("Client disconnected from event stream.")
			return
		case ev, ok := <-events:
			if !ok {
				slog.Info("Event stream closed by server.")
				return
			}
			if err := writeStreamEvent(w, string(ev.Type), ev); err != nil {
				slog.Warn("Could not write to event stream, client likely disconnected.", "error", err)
				return
			}
		}
	}
}
