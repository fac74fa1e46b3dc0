package sse

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/boardtown/gamearea-go/internal/model"
)

const (
	// Buffer size for client send channel
	sendBufferSize = 256

	// Keepalive interval to prevent connection timeout
	keepaliveInterval = 30 * time.Second
)

// Client represents a single SSE connection
type Client struct {
	hub         *Hub
	playerID    model.PlayerID
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client
func NewClient(hub *Hub, playerID model.PlayerID) *Client {
	return &Client{
		hub:         hub,
		playerID:    playerID,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeSSE handles the SSE connection for a client
// This should be called from an HTTP handler
func (c *Client) ServeSSE(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error("sse not supported - response writer doesn't support flushing")
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	c.hub.Register(c)
	defer c.hub.Unregister(c)

	// Initial event confirms the stream is live
	fmt.Fprintf(w, "event: connected\ndata: {\"player_id\": %q}\n\n", c.playerID)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	ctx := r.Context()
	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				// Hub closed the channel
				return
			}
			if _, err := w.Write(message); err != nil {
				logger.Debug("sse write failed",
					slog.String("player_id", string(c.playerID)),
					slog.String("error", err.Error()))
				return
			}
			flusher.Flush()

		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-ctx.Done():
			return
		}
	}
}
