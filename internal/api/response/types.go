package response

import (
	"time"

	"github.com/boardtown/gamearea-go/internal/model"
	"github.com/boardtown/gamearea-go/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	IsGuest  bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:       string(p.ID),
		UserName: p.UserName,
		IsGuest:  p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Town is the public view of a town record.
// The update password never appears in responses.
type Town struct {
	ID           string                 `json:"id"`
	FriendlyName string                 `json:"friendly_name"`
	IsPublic     bool                   `json:"is_public"`
	Capacity     int                    `json:"capacity"`
	Areas        []model.AreaDefinition `json:"areas"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// TownFromModel converts a model.TownRecord
func TownFromModel(t *model.TownRecord) Town {
	return Town{
		ID:           string(t.ID),
		FriendlyName: t.FriendlyName,
		IsPublic:     t.IsPublic,
		Capacity:     t.Capacity,
		Areas:        t.Areas,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// TownDetail is the full live view of a town
type TownDetail struct {
	Town      Town                 `json:"town"`
	Occupants []model.OccupantInfo `json:"occupants"`
	Areas     []model.AreaModel    `json:"areas"`
}

// TownDetailFromSnapshot converts a model.TownSnapshot
func TownDetailFromSnapshot(s *model.TownSnapshot) TownDetail {
	return TownDetail{
		Town:      TownFromModel(&s.Record),
		Occupants: s.Occupants,
		Areas:     s.Areas,
	}
}

// TownList is the response for listing public towns
type TownList struct {
	Towns []model.TownSummary `json:"towns"`
}

// MoveResponse is the response after moving a player
type MoveResponse struct {
	Location model.PlayerLocation `json:"location"`
}

// ChatLog is the response for fetching town chat
type ChatLog struct {
	Messages []model.ChatMessage `json:"messages"`
}

// AreaList is the response for listing a town's areas
type AreaList struct {
	Areas []model.AreaModel `json:"areas"`
}

// AreaHistory is the response for fetching an area's game history
type AreaHistory struct {
	History []model.HistoryEntry `json:"history"`
}
