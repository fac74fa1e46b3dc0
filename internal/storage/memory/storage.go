package memory

import (
	"context"
	"sync"

	"github.com/boardtown/gamearea-go/internal/model"
	"github.com/boardtown/gamearea-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	towns             map[model.TownID]*model.TownRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		towns:             make(map[model.TownID]*model.TownRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.UserName] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Town operations

func (s *Storage) SaveTown(ctx context.Context, town *model.TownRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.towns[town.ID] = town
	return nil
}

func (s *Storage) GetTown(ctx context.Context, id model.TownID) (*model.TownRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	town, ok := s.towns[id]
	if !ok {
		return nil, model.ErrTownNotFound
	}
	return town, nil
}

func (s *Storage) DeleteTown(ctx context.Context, id model.TownID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.towns, id)
	return nil
}

func (s *Storage) ListTowns(ctx context.Context) ([]*model.TownRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	towns := make([]*model.TownRecord, 0, len(s.towns))
	for _, town := range s.towns {
		towns = append(towns, town)
	}
	return towns, nil
}

func (s *Storage) TownExists(ctx context.Context, id model.TownID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.towns[id]
	return ok, nil
}
