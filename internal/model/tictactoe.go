package model

// Mark is a Tic-Tac-Toe seat
type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"
)

// OtherMark returns the opposing mark
func OtherMark(m Mark) Mark {
	if m == MarkX {
		return MarkO
	}
	return MarkX
}

// Tic-Tac-Toe board dimensions
const (
	TicTacToeSize  = 3
	TicTacToeCells = TicTacToeSize * TicTacToeSize
)

// TicTacToeMove is a placed mark on the 3x3 grid
type TicTacToeMove struct {
	Mark Mark `json:"mark"`
	Row  int  `json:"row"`
	Col  int  `json:"col"`
}

// TicTacToeState is the full variant state of a Tic-Tac-Toe game.
// X always moves first; parity over Moves determines the mark to play.
type TicTacToeState struct {
	X      PlayerID        `json:"x,omitempty"`
	O      PlayerID        `json:"o,omitempty"`
	XReady bool            `json:"x_ready"`
	OReady bool            `json:"o_ready"`
	Status GameStatus      `json:"status"`
	Winner PlayerID        `json:"winner,omitempty"`
	Moves  []TicTacToeMove `json:"moves"`
}

// NextMark returns the mark required for the next move
func (s TicTacToeState) NextMark() Mark {
	if len(s.Moves)%2 == 0 {
		return MarkX
	}
	return MarkO
}

// SeatOf returns the mark seated by the given player, or false if unseated
func (s TicTacToeState) SeatOf(id PlayerID) (Mark, bool) {
	switch {
	case id != "" && s.X == id:
		return MarkX, true
	case id != "" && s.O == id:
		return MarkO, true
	default:
		return "", false
	}
}
