package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/boardtown/gamearea-go/internal/api/middleware"
	"github.com/boardtown/gamearea-go/internal/model"
	"github.com/boardtown/gamearea-go/internal/sse"
	"github.com/boardtown/gamearea-go/internal/town"
)

// EventsHandler streams town events to clients over SSE
type EventsHandler struct {
	towns      town.ControllerInterface
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(towns town.ControllerInterface, hubManager *sse.HubManager, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		towns:      towns,
		hubManager: hubManager,
		logger:     logger,
	}
}

// Stream handles GET /api/v1/towns/{town_id}/events
// The connection stays open and receives every event published for the town.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	townID := model.TownID(mux.Vars(r)["town_id"])

	// Reject streams for towns that don't exist
	if _, err := h.towns.GetTown(r.Context(), townID); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(townID)
	client := sse.NewClient(hub, player.ID)
	client.ServeSSE(w, r, h.logger)
}
