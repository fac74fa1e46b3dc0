package game

import (
	"github.com/boardtown/gamearea-go/internal/dependencies/random"
	"github.com/boardtown/gamearea-go/internal/model"
)

// MarkPreferences carries the rejoin hint from a finished Tic-Tac-Toe game:
// which identity held each mark. X always moves first, so only re-seating is
// biased.
type MarkPreferences struct {
	PreferredX model.PlayerID
	PreferredO model.PlayerID
}

// TicTacToeGame is the Tic-Tac-Toe state machine: the same lifecycle shape as
// Connect Four on a 3x3 grid with X/O seats and 3-in-a-row win detection.
type TicTacToeGame struct {
	core
	prefs MarkPreferences
	state model.TicTacToeState
}

// NewTicTacToe creates a game, optionally seeded with seat preferences
func NewTicTacToe(rnd random.Random, prefs MarkPreferences) *TicTacToeGame {
	return &TicTacToeGame{
		core:  newCore(rnd),
		prefs: prefs,
		state: model.TicTacToeState{
			Status: model.GameWaitingForPlayers,
			Moves:  []model.TicTacToeMove{},
		},
	}
}

// Preferences returns the rejoin hint a successor game should be built with
func (g *TicTacToeGame) Preferences() MarkPreferences {
	return MarkPreferences{
		PreferredX: g.state.X,
		PreferredO: g.state.O,
	}
}

// State returns the current state value
func (g *TicTacToeGame) State() model.TicTacToeState {
	return g.state
}

func (g *TicTacToeGame) Status() model.GameStatus {
	return g.state.Status
}

func (g *TicTacToeGame) Winner() model.PlayerID {
	return g.state.Winner
}

func (g *TicTacToeGame) ToModel() model.GameModel {
	return g.snapshot(g.state)
}

func (g *TicTacToeGame) Join(p model.Player) error {
	st := g.state
	if st.X == p.ID || st.O == p.ID {
		return model.ErrPlayerAlreadyInGame
	}
	switch {
	case g.prefs.PreferredX == p.ID && st.X == "":
		st.X = p.ID
	case g.prefs.PreferredO == p.ID && st.O == "":
		st.O = p.ID
	case st.X == "":
		st.X = p.ID
	case st.O == "":
		st.O = p.ID
	default:
		return model.ErrGameFull
	}
	st.Status = model.GameWaitingForPlayers
	if st.X != "" && st.O != "" {
		st.Status = model.GameWaitingToStart
	}
	g.state = st
	g.addPlayer(p)
	return nil
}

func (g *TicTacToeGame) Start(p model.Player) error {
	st := g.state
	if st.Status != model.GameWaitingToStart {
		return model.ErrGameNotStartable
	}
	if st.X != p.ID && st.O != p.ID {
		return model.ErrPlayerNotInGame
	}
	if st.X == p.ID {
		st.XReady = true
	}
	if st.O == p.ID {
		st.OReady = true
	}
	if st.XReady && st.OReady {
		st.Status = model.GameInProgress
	}
	g.state = st
	return nil
}

func (g *TicTacToeGame) Leave(p model.Player) error {
	st := g.state
	if st.Status == model.GameOver {
		g.removePlayer(p.ID)
		return nil
	}
	mark, ok := st.SeatOf(p.ID)
	if !ok {
		return model.ErrPlayerNotInGame
	}
	if mark == model.MarkX {
		st.X, st.XReady = "", false
	} else {
		st.O, st.OReady = "", false
	}
	switch st.Status {
	case model.GameWaitingToStart, model.GameWaitingForPlayers:
		st.Status = model.GameWaitingForPlayers
	case model.GameInProgress:
		st.Status = model.GameOver
		if mark == model.MarkX {
			st.Winner = st.O
		} else {
			st.Winner = st.X
		}
	}
	g.state = st
	if st.Status == model.GameOver {
		g.concludeResult(st.Winner)
	}
	g.removePlayer(p.ID)
	return nil
}

func (g *TicTacToeGame) ApplyMove(playerID model.PlayerID, mv model.Move) error {
	st := g.state
	if st.Status != model.GameInProgress {
		return model.ErrGameNotInProgress
	}
	mark, ok := st.SeatOf(playerID)
	if !ok {
		return model.ErrPlayerNotInGame
	}
	move := model.TicTacToeMove{Mark: mark, Row: mv.Row, Col: mv.Col}
	if err := validateTicTacToeMove(st, move); err != nil {
		return err
	}
	g.state = applyTicTacToeMove(st, move)
	if g.state.Status == model.GameOver {
		g.concludeResult(g.state.Winner)
	}
	return nil
}

func validateTicTacToeMove(st model.TicTacToeState, move model.TicTacToeMove) error {
	if move.Mark != st.NextMark() {
		return model.ErrNotYourTurn
	}
	if move.Row < 0 || move.Row >= model.TicTacToeSize ||
		move.Col < 0 || move.Col >= model.TicTacToeSize {
		return model.ErrInvalidBoardPosition
	}
	for _, m := range st.Moves {
		if m.Row == move.Row && m.Col == move.Col {
			return model.ErrInvalidBoardPosition
		}
	}
	return nil
}

func applyTicTacToeMove(st model.TicTacToeState, move model.TicTacToeMove) model.TicTacToeState {
	moves := make([]model.TicTacToeMove, len(st.Moves), len(st.Moves)+1)
	copy(moves, st.Moves)
	moves = append(moves, move)
	st.Moves = moves

	switch {
	case ticTacToeWin(moves, move.Mark):
		st.Status = model.GameOver
		if move.Mark == model.MarkX {
			st.Winner = st.X
		} else {
			st.Winner = st.O
		}
	case len(moves) == model.TicTacToeCells:
		st.Status = model.GameOver
		st.Winner = ""
	}
	return st
}

func ticTacToeWin(moves []model.TicTacToeMove, mark model.Mark) bool {
	var board [model.TicTacToeSize][model.TicTacToeSize]model.Mark
	for _, m := range moves {
		board[m.Row][m.Col] = m.Mark
	}

	for i := 0; i < model.TicTacToeSize; i++ {
		if board[i][0] == mark && board[i][1] == mark && board[i][2] == mark {
			return true
		}
		if board[0][i] == mark && board[1][i] == mark && board[2][i] == mark {
			return true
		}
	}
	if board[0][0] == mark && board[1][1] == mark && board[2][2] == mark {
		return true
	}
	return board[0][2] == mark && board[1][1] == mark && board[2][0] == mark
}

var _ Game = (*TicTacToeGame)(nil)
