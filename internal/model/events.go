package model

import "time"

// EventType identifies the type of event pushed to town observers
type EventType string

const (
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
	EventPlayerMoved  EventType = "player_moved"
	EventAreaChanged  EventType = "area_changed"
	EventChatMessage  EventType = "chat_message"
)

// Event is the base structure for all town events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	TownID    TownID    `json:"town_id"`
	Payload   any       `json:"payload"`
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	PlayerID PlayerID `json:"player_id"`
	UserName string   `json:"user_name"`
}

// PlayerLeftPayload contains data for player left events
type PlayerLeftPayload struct {
	PlayerID PlayerID `json:"player_id"`
	UserName string   `json:"user_name"`
}

// PlayerMovedPayload contains data for player movement events
type PlayerMovedPayload struct {
	PlayerID PlayerID       `json:"player_id"`
	Location PlayerLocation `json:"location"`
}

// AreaChangedPayload carries the fresh snapshot of a mutated area
type AreaChangedPayload struct {
	Area AreaModel `json:"area"`
}
