package model

// GameID uniquely identifies a game instance
type GameID string

// GameStatus represents the current phase of a two-player game.
// Status only advances forward, except that a player leaving during
// WaitingToStart regresses the game to WaitingForPlayers.
type GameStatus string

const (
	GameWaitingForPlayers GameStatus = "WAITING_FOR_PLAYERS"
	GameWaitingToStart    GameStatus = "WAITING_TO_START"
	GameInProgress        GameStatus = "IN_PROGRESS"
	GameOver              GameStatus = "OVER"
)

// Move is a piece placement submitted by a player. Piece is re-derived
// server-side from the mover's seat; it is never trusted from the caller.
type Move struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Piece string `json:"piece,omitempty"`
}

// GameModel is the serialized snapshot of a game that crosses the boundary
// to observers. State is the variant-specific state value.
type GameModel struct {
	ID      GameID     `json:"id"`
	State   any        `json:"state"`
	Result  *string    `json:"result"`
	Players []PlayerID `json:"players"`
}
