package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/boardtown/gamearea-go/internal/model"
	"github.com/boardtown/gamearea-go/internal/town"
)

// Broadcaster delivers town events to SSE clients as JSON payloads
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

var _ town.Notifier = (*Broadcaster)(nil)

// NewBroadcaster creates a Broadcaster backed by a HubManager
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "broadcaster")),
	}
}

// Publish serializes the event and broadcasts it to the event's town.
// Events for towns with no connected clients are dropped.
func (b *Broadcaster) Publish(ev model.Event) {
	hub := b.hubManager.GetHub(ev.TownID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		b.logger.Error("failed to marshal event",
			slog.String("town", string(ev.TownID)),
			slog.String("event_type", string(ev.Type)),
			slog.String("error", err.Error()))
		return
	}

	hub.BroadcastEvent(string(ev.Type), string(data))
}
