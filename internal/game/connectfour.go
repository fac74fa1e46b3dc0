package game

import (
	"github.com/boardtown/gamearea-go/internal/dependencies/random"
	"github.com/boardtown/gamearea-go/internal/model"
)

// SeatPreferences carries the rejoin hint from a finished Connect Four game
// to its successor: which identity held each seat, and who moved first.
// It biases re-seating and first-player rotation; it is not a guarantee.
type SeatPreferences struct {
	PreferredRed     model.PlayerID
	PreferredYellow  model.PlayerID
	PriorFirstPlayer model.Color
}

// ConnectFourGame is the Connect Four state machine. The state value is
// replaced wholesale on each transition, so a failed validation never leaves
// a partial mutation behind.
type ConnectFourGame struct {
	core
	prefs SeatPreferences
	state model.ConnectFourState
}

// NewConnectFour creates a game. With zero-value preferences the first player
// is Red; otherwise the first player rotates to the opposite of the prior
// game's, subject to the seat-continuity check applied at Start.
func NewConnectFour(rnd random.Random, prefs SeatPreferences) *ConnectFourGame {
	prior := prefs.PriorFirstPlayer
	if prior == "" {
		prior = model.Yellow
	}
	return &ConnectFourGame{
		core:  newCore(rnd),
		prefs: prefs,
		state: model.ConnectFourState{
			Status:      model.GameWaitingForPlayers,
			FirstPlayer: model.OtherColor(prior),
			Moves:       []model.ConnectFourMove{},
		},
	}
}

// Preferences returns the rejoin hint a successor game should be built with
func (g *ConnectFourGame) Preferences() SeatPreferences {
	return SeatPreferences{
		PreferredRed:     g.state.Red,
		PreferredYellow:  g.state.Yellow,
		PriorFirstPlayer: g.state.FirstPlayer,
	}
}

// State returns the current state value
func (g *ConnectFourGame) State() model.ConnectFourState {
	return g.state
}

func (g *ConnectFourGame) Status() model.GameStatus {
	return g.state.Status
}

func (g *ConnectFourGame) Winner() model.PlayerID {
	return g.state.Winner
}

func (g *ConnectFourGame) ToModel() model.GameModel {
	return g.snapshot(g.state)
}

// Join seats the player. A returning player is steered back into their
// preferred seat when it is open; otherwise red fills before yellow.
func (g *ConnectFourGame) Join(p model.Player) error {
	st := g.state
	if st.Red == p.ID || st.Yellow == p.ID {
		return model.ErrPlayerAlreadyInGame
	}
	switch {
	case g.prefs.PreferredRed == p.ID && st.Red == "":
		st.Red = p.ID
	case g.prefs.PreferredYellow == p.ID && st.Yellow == "":
		st.Yellow = p.ID
	case st.Red == "":
		st.Red = p.ID
	case st.Yellow == "":
		st.Yellow = p.ID
	default:
		return model.ErrGameFull
	}
	st.Status = model.GameWaitingForPlayers
	if st.Red != "" && st.Yellow != "" {
		st.Status = model.GameWaitingToStart
	}
	g.state = st
	g.addPlayer(p)
	return nil
}

// Start marks the caller ready. If neither seat-holder matches their
// preferred identity from the prior game, seat continuity is broken and the
// first-player rotation resets to Red.
func (g *ConnectFourGame) Start(p model.Player) error {
	st := g.state
	if st.Status != model.GameWaitingToStart {
		return model.ErrGameNotStartable
	}
	if st.Red != p.ID && st.Yellow != p.ID {
		return model.ErrPlayerNotInGame
	}
	if st.Red == p.ID {
		st.RedReady = true
	}
	if st.Yellow == p.ID {
		st.YellowReady = true
	}
	if !(g.prefs.PreferredRed == st.Red || g.prefs.PreferredYellow == st.Yellow) {
		st.FirstPlayer = model.Red
	}
	if st.RedReady && st.YellowReady {
		st.Status = model.GameInProgress
	}
	g.state = st
	return nil
}

// Leave clears the caller's seat. Leaving an in-progress game ends it with
// the remaining seat as winner; leaving a finished game is a no-op.
func (g *ConnectFourGame) Leave(p model.Player) error {
	st := g.state
	if st.Status == model.GameOver {
		g.removePlayer(p.ID)
		return nil
	}
	color, ok := st.SeatOf(p.ID)
	if !ok {
		return model.ErrPlayerNotInGame
	}
	if color == model.Red {
		st.Red, st.RedReady = "", false
	} else {
		st.Yellow, st.YellowReady = "", false
	}
	switch st.Status {
	case model.GameWaitingToStart, model.GameWaitingForPlayers:
		st.Status = model.GameWaitingForPlayers
	case model.GameInProgress:
		st.Status = model.GameOver
		if color == model.Red {
			st.Winner = st.Yellow
		} else {
			st.Winner = st.Red
		}
	}
	g.state = st
	if st.Status == model.GameOver {
		g.concludeResult(st.Winner)
	}
	g.removePlayer(p.ID)
	return nil
}

// ApplyMove applies a move for the player, deriving the color from their
// seat, validating turn order and gravity, and re-evaluating terminal
// conditions.
func (g *ConnectFourGame) ApplyMove(playerID model.PlayerID, mv model.Move) error {
	st := g.state
	if st.Status != model.GameInProgress {
		return model.ErrGameNotInProgress
	}
	color, ok := st.SeatOf(playerID)
	if !ok {
		return model.ErrPlayerNotInGame
	}
	move := model.ConnectFourMove{Color: color, Col: mv.Col, Row: mv.Row}
	if err := validateConnectFourMove(st, move); err != nil {
		return err
	}
	g.state = applyConnectFourMove(st, move)
	if g.state.Status == model.GameOver {
		g.concludeResult(g.state.Winner)
	}
	return nil
}

func validateConnectFourMove(st model.ConnectFourState, move model.ConnectFourMove) error {
	if move.Color != st.NextColor() {
		return model.ErrNotYourTurn
	}
	if move.Col < 0 || move.Col >= model.ConnectFourCols {
		return model.ErrInvalidBoardPosition
	}
	occupancy := st.ColumnOccupancy(move.Col)
	if occupancy >= model.ConnectFourRows {
		return model.ErrInvalidBoardPosition
	}
	// Gravity: the piece must land on the lowest unoccupied row
	if move.Row != model.ConnectFourRows-1-occupancy {
		return model.ErrInvalidBoardPosition
	}
	return nil
}

func applyConnectFourMove(st model.ConnectFourState, move model.ConnectFourMove) model.ConnectFourState {
	moves := make([]model.ConnectFourMove, len(st.Moves), len(st.Moves)+1)
	copy(moves, st.Moves)
	moves = append(moves, move)
	st.Moves = moves

	switch {
	case connectFourWin(moves):
		st.Status = model.GameOver
		if move.Color == model.Red {
			st.Winner = st.Red
		} else {
			st.Winner = st.Yellow
		}
	case len(moves) == model.ConnectFourCells:
		st.Status = model.GameOver
		st.Winner = ""
	}
	return st
}

// connectFourWin reconstructs the occupancy grid from the move list and scans
// the whole board for four same-color cells in a row in all four directions.
func connectFourWin(moves []model.ConnectFourMove) bool {
	var board [model.ConnectFourRows][model.ConnectFourCols]model.Color
	for _, m := range moves {
		board[m.Row][m.Col] = m.Color
	}

	// Horizontal runs
	for row := 0; row < model.ConnectFourRows; row++ {
		run := 1
		for col := 1; col < model.ConnectFourCols; col++ {
			if board[row][col] != "" && board[row][col] == board[row][col-1] {
				run++
			} else {
				run = 1
			}
			if run == 4 {
				return true
			}
		}
	}

	// Vertical runs
	for col := 0; col < model.ConnectFourCols; col++ {
		run := 1
		for row := 1; row < model.ConnectFourRows; row++ {
			if board[row][col] != "" && board[row][col] == board[row-1][col] {
				run++
			} else {
				run = 1
			}
			if run == 4 {
				return true
			}
		}
	}

	// Down-right diagonals
	for row := 0; row+3 < model.ConnectFourRows; row++ {
		for col := 0; col+3 < model.ConnectFourCols; col++ {
			c := board[row][col]
			if c != "" &&
				board[row+1][col+1] == c &&
				board[row+2][col+2] == c &&
				board[row+3][col+3] == c {
				return true
			}
		}
	}

	// Down-left diagonals
	for row := 0; row+3 < model.ConnectFourRows; row++ {
		for col := 3; col < model.ConnectFourCols; col++ {
			c := board[row][col]
			if c != "" &&
				board[row+1][col-1] == c &&
				board[row+2][col-2] == c &&
				board[row+3][col-3] == c {
				return true
			}
		}
	}

	return false
}

var _ Game = (*ConnectFourGame)(nil)
