// Package area hosts the game-area dispatcher: each area owns at most one
// active game, translates inbound commands into game operations, accumulates
// match history, and fires the area-changed hook exactly once per successful
// command that mutated visible state.
package area

import (
	"errors"
	"log/slog"

	"github.com/boardtown/gamearea-go/internal/dependencies/random"
	"github.com/boardtown/gamearea-go/internal/game"
	"github.com/boardtown/gamearea-go/internal/model"
)

// ChangedFunc is the area-changed notification hook. It receives the fresh
// snapshot to broadcast and must not mutate it.
type ChangedFunc func(model.AreaModel)

// Area is one spatial area within a town. Game areas (Connect Four,
// Tic-Tac-Toe) dispatch commands; conversation areas only track occupancy.
// Area is not safe for concurrent use; the town serializes access per area.
type Area struct {
	id        model.AreaID
	areaType  model.AreaType
	bounds    model.BoundingBox
	rnd       random.Random
	logger    *slog.Logger
	onChanged ChangedFunc

	game      game.Game
	history   []model.HistoryEntry
	occupants []model.Player
}

// New creates an area from its static definition
func New(def model.AreaDefinition, rnd random.Random, logger *slog.Logger, onChanged ChangedFunc) *Area {
	return &Area{
		id:        def.ID,
		areaType:  def.Type,
		bounds:    def.Bounds,
		rnd:       rnd,
		logger:    logger.With(slog.String("area", string(def.ID))),
		onChanged: onChanged,
	}
}

// ID returns the area identifier
func (a *Area) ID() model.AreaID {
	return a.id
}

// Type returns the area variant
func (a *Area) Type() model.AreaType {
	return a.areaType
}

// Bounds returns the area's footprint
func (a *Area) Bounds() model.BoundingBox {
	return a.bounds
}

// Game returns the active game, or nil
func (a *Area) Game() game.Game {
	return a.game
}

// History returns a copy of the append-only match history
func (a *Area) History() []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(a.history))
	copy(out, a.history)
	return out
}

// ToModel returns the snapshot broadcast to observers
func (a *Area) ToModel() model.AreaModel {
	ids := make([]model.PlayerID, len(a.occupants))
	for i, p := range a.occupants {
		ids[i] = p.ID
	}
	m := model.AreaModel{
		ID:        a.id,
		Type:      a.areaType,
		History:   a.History(),
		Occupants: ids,
	}
	if a.game != nil {
		gm := a.game.ToModel()
		m.Game = &gm
	}
	return m
}

// HandleCommand dispatches a tagged command issued by a player. On success
// it fires the area-changed hook exactly once and returns the response
// payload; on failure it returns the error with no notification and no
// visible state change.
func (a *Area) HandleCommand(cmd model.Command, p model.Player) (model.CommandResponse, error) {
	if a.areaType == model.AreaConversation {
		return model.CommandResponse{}, model.ErrNotAGameArea
	}

	switch cmd.Type {
	case model.CommandJoinGame:
		return a.handleJoin(p)
	case model.CommandStartGame:
		return a.handleStart(cmd, p)
	case model.CommandGameMove:
		return a.handleMove(cmd, p)
	case model.CommandLeaveGame:
		return a.handleLeave(cmd, p)
	default:
		return model.CommandResponse{}, model.ErrUnknownCommand
	}
}

func (a *Area) handleJoin(p model.Player) (model.CommandResponse, error) {
	g := a.game
	if g == nil || g.Status() == model.GameOver {
		g = a.newGame()
	}
	if err := g.Join(p); err != nil {
		return model.CommandResponse{}, err
	}
	a.game = g
	a.logger.Info("player joined game",
		slog.String("game_id", string(g.ID())),
		slog.String("player_id", string(p.ID)),
	)
	a.notify()
	return model.CommandResponse{GameID: g.ID()}, nil
}

func (a *Area) handleStart(cmd model.Command, p model.Player) (model.CommandResponse, error) {
	g, err := a.activeGame(cmd.GameID)
	if err != nil {
		return model.CommandResponse{}, err
	}
	if err := g.Start(p); err != nil {
		return model.CommandResponse{}, err
	}
	a.notify()
	return model.CommandResponse{GameID: g.ID()}, nil
}

func (a *Area) handleMove(cmd model.Command, p model.Player) (model.CommandResponse, error) {
	g, err := a.activeGame(cmd.GameID)
	if err != nil {
		return model.CommandResponse{}, err
	}
	if cmd.Move == nil {
		return model.CommandResponse{}, model.ErrUnknownCommand
	}
	wasOver := g.Status() == model.GameOver
	roster := g.Players()
	if err := g.ApplyMove(p.ID, *cmd.Move); err != nil {
		return model.CommandResponse{}, err
	}
	if !wasOver && g.Status() == model.GameOver {
		a.recordHistory(g, roster)
	}
	a.notify()
	return model.CommandResponse{}, nil
}

func (a *Area) handleLeave(cmd model.Command, p model.Player) (model.CommandResponse, error) {
	g, err := a.activeGame(cmd.GameID)
	if err != nil {
		return model.CommandResponse{}, err
	}
	wasOver := g.Status() == model.GameOver
	roster := g.Players()
	if err := g.Leave(p); err != nil {
		return model.CommandResponse{}, err
	}
	if !wasOver && g.Status() == model.GameOver {
		a.recordHistory(g, roster)
	}
	a.notify()
	return model.CommandResponse{}, nil
}

// activeGame guards command dispatch: a game must exist and the supplied
// identifier must match it.
func (a *Area) activeGame(id model.GameID) (game.Game, error) {
	if a.game == nil {
		return nil, model.ErrGameNotInProgress
	}
	if id != a.game.ID() {
		return nil, model.ErrGameIDMismatch
	}
	return a.game, nil
}

// newGame constructs a fresh game for this area's variant, seeded from the
// concluded one (if any) for seat preference and first-player rotation.
func (a *Area) newGame() game.Game {
	switch a.areaType {
	case model.AreaTicTacToe:
		var prefs game.MarkPreferences
		if prior, ok := a.game.(*game.TicTacToeGame); ok {
			prefs = prior.Preferences()
		}
		return game.NewTicTacToe(a.rnd, prefs)
	default:
		var prefs game.SeatPreferences
		if prior, ok := a.game.(*game.ConnectFourGame); ok {
			prefs = prior.Preferences()
		}
		return game.NewConnectFour(a.rnd, prefs)
	}
}

// recordHistory appends the single history entry for a game that just
// concluded. The roster is captured before the concluding operation so the
// entry covers both participants even when one of them left.
func (a *Area) recordHistory(g game.Game, roster []model.Player) {
	winner := g.Winner()
	scores := make(map[string]int, len(roster))
	for _, p := range roster {
		if winner != "" && p.ID == winner {
			scores[p.UserName] = 1
		} else {
			scores[p.UserName] = 0
		}
	}
	a.history = append(a.history, model.HistoryEntry{GameID: g.ID(), Scores: scores})
	a.logger.Info("game concluded",
		slog.String("game_id", string(g.ID())),
		slog.String("winner", string(winner)),
	)
}

// AddOccupant records a player entering the area's bounds
func (a *Area) AddOccupant(p model.Player) {
	for _, o := range a.occupants {
		if o.ID == p.ID {
			return
		}
	}
	a.occupants = append(a.occupants, p)
	a.notify()
}

// RemoveOccupant records a player exiting the area's bounds. If the player is
// seated in an in-progress game they forfeit it; a player who was never in
// the game is removed from occupancy only.
func (a *Area) RemoveOccupant(p model.Player) {
	if a.game != nil {
		wasOver := a.game.Status() == model.GameOver
		roster := a.game.Players()
		if err := a.game.Leave(p); err == nil {
			if !wasOver && a.game.Status() == model.GameOver {
				a.recordHistory(a.game, roster)
			}
		} else if !errors.Is(err, model.ErrPlayerNotInGame) {
			a.logger.Warn("failed to remove player from game",
				slog.String("player_id", string(p.ID)),
				slog.String("error", err.Error()),
			)
		}
	}
	kept := a.occupants[:0]
	for _, o := range a.occupants {
		if o.ID != p.ID {
			kept = append(kept, o)
		}
	}
	a.occupants = kept
	a.notify()
}

// Occupants returns the players currently within the area's bounds
func (a *Area) Occupants() []model.Player {
	out := make([]model.Player, len(a.occupants))
	copy(out, a.occupants)
	return out
}

func (a *Area) notify() {
	if a.onChanged != nil {
		a.onChanged(a.ToModel())
	}
}
