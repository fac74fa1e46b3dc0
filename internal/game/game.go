package game

import (
	"github.com/boardtown/gamearea-go/internal/dependencies/random"
	"github.com/boardtown/gamearea-go/internal/model"
)

const (
	// GameIDLength is the length of generated game identifiers
	GameIDLength = 12
	// GameIDAlphabet is the characters used in game identifiers
	GameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Game is a two-player turn-based game state machine. Implementations are
// not safe for concurrent use; the hosting area serializes access.
type Game interface {
	// ID returns the game's generated identifier
	ID() model.GameID

	// Players returns the roster in join order
	Players() []model.Player

	// Join seats the player per the variant's seating rule and appends them
	// to the roster
	Join(p model.Player) error

	// Leave removes the player, applying the variant-specific consequence
	// (leaving an in-progress game ends it)
	Leave(p model.Player) error

	// Start marks the caller ready; the game begins once both seats are ready
	Start(p model.Player) error

	// ApplyMove validates and applies a move for the given player. The piece
	// is derived from the player's seat, never from the submitted move.
	ApplyMove(playerID model.PlayerID, mv model.Move) error

	// Status returns the current lifecycle status
	Status() model.GameStatus

	// Winner returns the winning player's identity, or empty for none/tie
	Winner() model.PlayerID

	// ToModel returns the serialized snapshot that crosses the boundary to
	// observers
	ToModel() model.GameModel
}

// core carries the roster and identity shared by all game variants
type core struct {
	id      model.GameID
	players []model.Player
	result  *string
}

func newCore(rnd random.Random) core {
	return core{
		id: model.GameID(rnd.String(GameIDLength, GameIDAlphabet)),
	}
}

func (c *core) ID() model.GameID {
	return c.id
}

func (c *core) Players() []model.Player {
	out := make([]model.Player, len(c.players))
	copy(out, c.players)
	return out
}

func (c *core) addPlayer(p model.Player) {
	c.players = append(c.players, p)
}

func (c *core) removePlayer(id model.PlayerID) {
	kept := c.players[:0]
	for _, p := range c.players {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.players = kept
}

// playerByID looks up a roster member
func (c *core) playerByID(id model.PlayerID) (model.Player, bool) {
	for _, p := range c.players {
		if p.ID == id {
			return p, true
		}
	}
	return model.Player{}, false
}

// concludeResult records the human-readable outcome once a game ends
func (c *core) concludeResult(winner model.PlayerID) {
	s := "tie"
	if winner != "" {
		s = string(winner) + " wins"
		if p, ok := c.playerByID(winner); ok {
			s = p.UserName + " wins"
		}
	}
	c.result = &s
}

func (c *core) snapshot(state any) model.GameModel {
	ids := make([]model.PlayerID, len(c.players))
	for i, p := range c.players {
		ids[i] = p.ID
	}
	return model.GameModel{
		ID:      c.id,
		State:   state,
		Result:  c.result,
		Players: ids,
	}
}
