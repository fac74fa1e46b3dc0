package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/boardtown/gamearea-go/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) createPlayer(id, name string) model.Player {
	return model.Player{
		ID:        model.PlayerID(id),
		UserName:  name,
		IsGuest:   true,
		CreatedAt: s.app.MockClock.Now(),
	}
}

func (s *IntegrationSuite) defaultAreas() []model.AreaDefinition {
	return []model.AreaDefinition{
		{
			ID:     "c4",
			Type:   model.AreaConnectFour,
			Bounds: model.BoundingBox{X: 0, Y: 0, Width: 100, Height: 100},
		},
		{
			ID:     "lounge",
			Type:   model.AreaConversation,
			Bounds: model.BoundingBox{X: 200, Y: 0, Width: 50, Height: 50},
		},
	}
}

// Test: Complete flow from town creation through a finished game
func (s *IntegrationSuite) TestCompleteGameFlow() {
	s.app.MockRandom.QueueString("TOWNAAAA")

	// Step 1: Create a town with a connect four area
	record, err := s.app.TownController.CreateTown(s.ctx, "Testville", true, 10, "secret", s.defaultAreas())
	s.Require().NoError(err)
	s.Equal(model.TownID("TOWNAAAA"), record.ID)

	// Step 2: Two players join the town
	alice := s.createPlayer("p-alice", "alice")
	bob := s.createPlayer("p-bob", "bob")
	s.Require().NoError(s.app.TownController.JoinTown(s.ctx, record.ID, alice))
	s.Require().NoError(s.app.TownController.JoinTown(s.ctx, record.ID, bob))

	// Step 3: Both walk into the connect four area
	_, err = s.app.TownController.MovePlayer(s.ctx, record.ID, alice.ID, 10, 10, false)
	s.Require().NoError(err)
	_, err = s.app.TownController.MovePlayer(s.ctx, record.ID, bob.ID, 20, 10, false)
	s.Require().NoError(err)

	// Step 4: Both join the game; alice seats first
	resp, err := s.app.TownController.HandleAreaCommand(s.ctx, record.ID, "c4", alice.ID, model.Command{Type: model.CommandJoinGame})
	s.Require().NoError(err)
	gameID := resp.GameID
	s.NotEmpty(gameID)

	resp, err = s.app.TownController.HandleAreaCommand(s.ctx, record.ID, "c4", bob.ID, model.Command{Type: model.CommandJoinGame})
	s.Require().NoError(err)
	s.Equal(gameID, resp.GameID)

	// Step 5: Start the game
	_, err = s.app.TownController.HandleAreaCommand(s.ctx, record.ID, "c4", alice.ID, model.Command{Type: model.CommandStartGame, GameID: gameID})
	s.Require().NoError(err)

	// Step 6: Alice stacks column 0 to win
	moves := []struct {
		player model.PlayerID
		row    int
		col    int
	}{
		{alice.ID, 5, 0},
		{bob.ID, 5, 1},
		{alice.ID, 4, 0},
		{bob.ID, 4, 1},
		{alice.ID, 3, 0},
		{bob.ID, 3, 1},
		{alice.ID, 2, 0},
	}
	for _, m := range moves {
		_, err = s.app.TownController.HandleAreaCommand(s.ctx, record.ID, "c4", m.player, model.Command{
			Type:   model.CommandGameMove,
			GameID: gameID,
			Move:   &model.Move{Row: m.row, Col: m.col},
		})
		s.Require().NoError(err)
	}

	// Step 7: The game is over and alice won
	areaModel, err := s.app.TownController.GetArea(s.ctx, record.ID, "c4")
	s.Require().NoError(err)
	s.Require().NotNil(areaModel.Game)
	state := areaModel.Game.State.(model.ConnectFourState)
	s.Equal(model.GameOver, state.Status)
	s.Equal(alice.ID, state.Winner)

	// Step 8: The result is in the area history
	history, err := s.app.TownController.GetAreaHistory(s.ctx, record.ID, "c4")
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(gameID, history[0].GameID)
	s.Equal(map[string]int{"alice": 1, "bob": 0}, history[0].Scores)
}

// Test: Guest auth flows into town membership
func (s *IntegrationSuite) TestGuestAuthFlow() {
	s.app.MockRandom.QueueString("TOWNBBBB")

	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, "Wanda")
	s.Require().NoError(err)
	s.True(session.Player.IsGuest)

	validated, err := s.app.AuthService.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.PlayerID, validated.PlayerID)

	record, err := s.app.TownController.CreateTown(s.ctx, "Guestburg", true, 5, "secret", s.defaultAreas())
	s.Require().NoError(err)

	s.Require().NoError(s.app.TownController.JoinTown(s.ctx, record.ID, session.Player))

	snapshot, err := s.app.TownController.GetTown(s.ctx, record.ID)
	s.Require().NoError(err)
	s.Require().Len(snapshot.Occupants, 1)
	s.Equal("Wanda", snapshot.Occupants[0].UserName)
}

// Test: Town chat and lifecycle management
func (s *IntegrationSuite) TestTownLifecycle() {
	s.app.MockRandom.QueueString("TOWNCCCC")

	record, err := s.app.TownController.CreateTown(s.ctx, "Chatford", true, 5, "secret", s.defaultAreas())
	s.Require().NoError(err)

	alice := s.createPlayer("p-alice", "alice")
	s.Require().NoError(s.app.TownController.JoinTown(s.ctx, record.ID, alice))

	// Chat round-trip
	msg, err := s.app.TownController.PostChat(s.ctx, record.ID, alice.ID, "hello town")
	s.Require().NoError(err)
	s.Equal("alice", msg.UserName)

	log, err := s.app.TownController.GetChat(s.ctx, record.ID)
	s.Require().NoError(err)
	s.Require().Len(log, 1)
	s.Equal("hello town", log[0].Body)

	// Update requires the right password
	_, err = s.app.TownController.UpdateTown(s.ctx, record.ID, "wrong", "Renamed", false)
	s.ErrorIs(err, model.ErrInvalidPassword)

	updated, err := s.app.TownController.UpdateTown(s.ctx, record.ID, "secret", "Renamed", false)
	s.Require().NoError(err)
	s.Equal("Renamed", updated.FriendlyName)
	s.False(updated.IsPublic)

	// Renamed private town no longer appears in public listings
	towns, err := s.app.TownController.ListTowns(s.ctx)
	s.Require().NoError(err)
	s.Empty(towns)

	// Delete requires the right password too
	s.ErrorIs(s.app.TownController.DeleteTown(s.ctx, record.ID, "wrong"), model.ErrInvalidPassword)
	s.Require().NoError(s.app.TownController.DeleteTown(s.ctx, record.ID, "secret"))

	_, err = s.app.TownController.GetTown(s.ctx, record.ID)
	s.ErrorIs(err, model.ErrTownNotFound)
}
