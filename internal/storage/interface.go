package storage

import (
	"context"

	"github.com/boardtown/gamearea-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Town operations
	SaveTown(ctx context.Context, town *model.TownRecord) error
	GetTown(ctx context.Context, id model.TownID) (*model.TownRecord, error)
	DeleteTown(ctx context.Context, id model.TownID) error
	ListTowns(ctx context.Context) ([]*model.TownRecord, error)
	TownExists(ctx context.Context, id model.TownID) (bool, error)
}
