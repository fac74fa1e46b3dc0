package model

// Color is a Connect Four seat
type Color string

const (
	Red    Color = "Red"
	Yellow Color = "Yellow"
)

// OtherColor returns the opposing seat color
func OtherColor(c Color) Color {
	if c == Red {
		return Yellow
	}
	return Red
}

// Connect Four board dimensions
const (
	ConnectFourRows  = 6
	ConnectFourCols  = 7
	ConnectFourCells = ConnectFourRows * ConnectFourCols
)

// ConnectFourMove is a placed piece. Row is determined by gravity (the lowest
// unoccupied cell in the column at placement time), never chosen freely.
type ConnectFourMove struct {
	Color Color `json:"color"`
	Col   int   `json:"col"`
	Row   int   `json:"row"`
}

// ConnectFourState is the full variant state of a Connect Four game.
// Empty PlayerID means the seat is open. Moves are in chronological order;
// the order determines both board occupancy and whose turn is next.
type ConnectFourState struct {
	Red         PlayerID          `json:"red,omitempty"`
	Yellow      PlayerID          `json:"yellow,omitempty"`
	RedReady    bool              `json:"red_ready"`
	YellowReady bool              `json:"yellow_ready"`
	Status      GameStatus        `json:"status"`
	FirstPlayer Color             `json:"first_player"`
	Winner      PlayerID          `json:"winner,omitempty"`
	Moves       []ConnectFourMove `json:"moves"`
}

// NextColor returns the color required for the next move: move-count parity
// anchored to FirstPlayer.
func (s ConnectFourState) NextColor() Color {
	if len(s.Moves)%2 == 0 {
		return s.FirstPlayer
	}
	return OtherColor(s.FirstPlayer)
}

// ColumnOccupancy returns the number of pieces placed in the given column
func (s ConnectFourState) ColumnOccupancy(col int) int {
	n := 0
	for _, m := range s.Moves {
		if m.Col == col {
			n++
		}
	}
	return n
}

// SeatOf returns the color seated by the given player, or false if unseated
func (s ConnectFourState) SeatOf(id PlayerID) (Color, bool) {
	switch {
	case id != "" && s.Red == id:
		return Red, true
	case id != "" && s.Yellow == id:
		return Yellow, true
	default:
		return "", false
	}
}
