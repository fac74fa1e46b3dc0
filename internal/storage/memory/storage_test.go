package memory

import (
	"context"
	"testing"
	"time"

	"github.com/boardtown/gamearea-go/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:        "player-1",
		UserName:  "alice",
		IsGuest:   false,
		CreatedAt: time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.UserName, retrieved.UserName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", UserName: "alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		UserName:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.UserName, retrieved.UserName)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		UserName:     "alice",
		PasswordHash: "hash123",
	}
	_ = s.storage.SaveRegisteredPlayer(s.ctx, rp)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("player-1", string(retrieved.PlayerID))
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Town tests

func (s *StorageSuite) TestSaveAndGetTown() {
	town := &model.TownRecord{
		ID:           "TOWN1234",
		FriendlyName: "Test Town",
		IsPublic:     true,
		Capacity:     10,
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveTown(s.ctx, town)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetTown(s.ctx, "TOWN1234")
	s.Require().NoError(err)
	s.Equal(town.ID, retrieved.ID)
	s.Equal(town.FriendlyName, retrieved.FriendlyName)
}

func (s *StorageSuite) TestGetTownNotFound() {
	_, err := s.storage.GetTown(s.ctx, "NONEXISTENT")
	s.ErrorIs(err, model.ErrTownNotFound)
}

func (s *StorageSuite) TestTownExists() {
	town := &model.TownRecord{ID: "TOWN1234", FriendlyName: "Test Town"}
	_ = s.storage.SaveTown(s.ctx, town)

	exists, err := s.storage.TownExists(s.ctx, "TOWN1234")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.TownExists(s.ctx, "NONEXISTENT")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestDeleteTown() {
	town := &model.TownRecord{ID: "TOWN1234", FriendlyName: "Test Town"}
	_ = s.storage.SaveTown(s.ctx, town)

	err := s.storage.DeleteTown(s.ctx, "TOWN1234")
	s.Require().NoError(err)

	_, err = s.storage.GetTown(s.ctx, "TOWN1234")
	s.ErrorIs(err, model.ErrTownNotFound)
}

func (s *StorageSuite) TestListTowns() {
	town1 := &model.TownRecord{ID: "TOWN1", FriendlyName: "One"}
	town2 := &model.TownRecord{ID: "TOWN2", FriendlyName: "Two"}
	_ = s.storage.SaveTown(s.ctx, town1)
	_ = s.storage.SaveTown(s.ctx, town2)

	towns, err := s.storage.ListTowns(s.ctx)
	s.Require().NoError(err)
	s.Len(towns, 2)
}

func (s *StorageSuite) TestListTownsEmpty() {
	towns, err := s.storage.ListTowns(s.ctx)
	s.Require().NoError(err)
	s.Empty(towns)
}
