package model

// CommandType tags an inbound area command
type CommandType string

const (
	CommandJoinGame  CommandType = "JoinGame"
	CommandStartGame CommandType = "StartGame"
	CommandGameMove  CommandType = "GameMove"
	CommandLeaveGame CommandType = "LeaveGame"
)

// Command is the tagged command an area dispatcher accepts. GameID is set for
// StartGame, GameMove and LeaveGame; Move only for GameMove. The issuing
// player travels alongside the command, not inside it.
type Command struct {
	Type   CommandType `json:"type"`
	GameID GameID      `json:"game_id,omitempty"`
	Move   *Move       `json:"move,omitempty"`
}

// CommandResponse is the success payload of a dispatched command. GameID is
// populated for JoinGame and StartGame; Move and Leave return an empty payload.
type CommandResponse struct {
	GameID GameID `json:"game_id,omitempty"`
}
