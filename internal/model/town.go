package model

import "time"

// TownID uniquely identifies a town
type TownID string

// TownRecord is the persisted description of a town: metadata plus its area
// layout. Live occupancy and game state are held by the town controller, not
// stored.
type TownRecord struct {
	ID             TownID
	FriendlyName   string
	IsPublic       bool
	Capacity       int
	UpdatePassword string // required for destructive town operations
	Areas          []AreaDefinition
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TownSummary is the listing view of a public town
type TownSummary struct {
	ID               TownID `json:"town_id"`
	FriendlyName     string `json:"friendly_name"`
	Capacity         int    `json:"capacity"`
	CurrentOccupancy int    `json:"current_occupancy"`
}

// OccupantInfo is the public view of a player inside a town
type OccupantInfo struct {
	PlayerID PlayerID       `json:"player_id"`
	UserName string         `json:"user_name"`
	Location PlayerLocation `json:"location"`
}

// TownSnapshot is the full live view of a town: the persisted record plus
// in-memory occupancy and area state
type TownSnapshot struct {
	Record    TownRecord     `json:"record"`
	Occupants []OccupantInfo `json:"occupants"`
	Areas     []AreaModel    `json:"areas"`
}

// ChatMessage is a town-scoped chat message
type ChatMessage struct {
	Author   PlayerID  `json:"author"`
	UserName string    `json:"user_name"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
}

// ChatBacklogLimit caps the retained chat messages per town
const ChatBacklogLimit = 200
