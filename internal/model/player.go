package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a town participant. The game engine stores identity
// references only; player lifecycle is owned by the auth service.
type Player struct {
	ID        PlayerID
	UserName  string
	IsGuest   bool // true for unregistered players
	CreatedAt time.Time
}

// RegisteredPlayer extends Player with authentication data
// Stored separately for security (password never in memory with session)
type RegisteredPlayer struct {
	PlayerID     PlayerID
	UserName     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlayerLocation is a player's position within a town
type PlayerLocation struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Moving bool    `json:"moving"`
	// AreaID is the area whose bounds contain the player, empty if none
	AreaID AreaID `json:"area_id,omitempty"`
}
