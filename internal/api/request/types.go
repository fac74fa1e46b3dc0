package request

import "github.com/boardtown/gamearea-go/internal/model"

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	UserName string `json:"user_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateTownRequest is the request body for creating a town
type CreateTownRequest struct {
	FriendlyName   string                 `json:"friendly_name"`
	IsPublic       bool                   `json:"is_public"`
	Capacity       int                    `json:"capacity,omitempty"`
	UpdatePassword string                 `json:"update_password"`
	Areas          []model.AreaDefinition `json:"areas"`
}

// UpdateTownRequest is the request body for updating a town
type UpdateTownRequest struct {
	UpdatePassword string `json:"update_password"`
	FriendlyName   string `json:"friendly_name"`
	IsPublic       bool   `json:"is_public"`
}

// DeleteTownRequest is the request body for deleting a town
type DeleteTownRequest struct {
	UpdatePassword string `json:"update_password"`
}

// MoveRequest is the request body for moving a player within a town
type MoveRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Moving bool    `json:"moving"`
}

// AreaCommandRequest is the request body for issuing a command to an area
type AreaCommandRequest struct {
	Type   string      `json:"type"`
	GameID string      `json:"game_id,omitempty"`
	Move   *model.Move `json:"move,omitempty"`
}

// ToCommand converts the request to a model command
func (r AreaCommandRequest) ToCommand() model.Command {
	return model.Command{
		Type:   model.CommandType(r.Type),
		GameID: model.GameID(r.GameID),
		Move:   r.Move,
	}
}

// PostChatRequest is the request body for posting a chat message
type PostChatRequest struct {
	Body string `json:"body"`
}
