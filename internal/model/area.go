package model

// AreaID uniquely identifies an area within a town
type AreaID string

// AreaType discriminates area variants
type AreaType string

const (
	AreaConnectFour  AreaType = "ConnectFourArea"
	AreaTicTacToe    AreaType = "TicTacToeArea"
	AreaConversation AreaType = "ConversationArea"
)

// BoundingBox is an area's rectangular footprint in town coordinates
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the point lies within the box
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// AreaDefinition is the static layout of one area, fixed at town creation
type AreaDefinition struct {
	ID     AreaID      `json:"id"`
	Type   AreaType    `json:"type"`
	Bounds BoundingBox `json:"bounds"`
}

// HistoryEntry is an immutable record of one concluded game's per-participant
// outcome. Scores maps username to 1 (win) or 0 (loss/tie). Exactly one entry
// is written per concluded game.
type HistoryEntry struct {
	GameID GameID         `json:"game_id"`
	Scores map[string]int `json:"scores"`
}

// AreaModel is the snapshot of an area broadcast to observers whenever the
// area-changed hook fires.
type AreaModel struct {
	ID        AreaID         `json:"id"`
	Type      AreaType       `json:"type"`
	Game      *GameModel     `json:"game,omitempty"`
	History   []HistoryEntry `json:"history"`
	Occupants []PlayerID     `json:"occupants"`
}
