package area

import (
	"testing"

	"github.com/boardtown/gamearea-go/internal/dependencies/mocks"
	"github.com/boardtown/gamearea-go/internal/game"
	"github.com/boardtown/gamearea-go/internal/model"
	"github.com/boardtown/gamearea-go/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type AreaSuite struct {
	suite.Suite
	random    *mocks.MockRandom
	area      *Area
	snapshots []model.AreaModel
	alice     model.Player
	bob       model.Player
	carol     model.Player
}

func TestAreaSuite(t *testing.T) {
	suite.Run(t, new(AreaSuite))
}

func (s *AreaSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.snapshots = nil
	s.area = New(
		model.AreaDefinition{
			ID:     "c4-area",
			Type:   model.AreaConnectFour,
			Bounds: model.BoundingBox{X: 0, Y: 0, Width: 100, Height: 100},
		},
		s.random,
		testutil.NopLogger(),
		func(m model.AreaModel) { s.snapshots = append(s.snapshots, m) },
	)
	s.alice = model.Player{ID: "player-1", UserName: "alice"}
	s.bob = model.Player{ID: "player-2", UserName: "bob"}
	s.carol = model.Player{ID: "player-3", UserName: "carol"}
}

// joinBoth seats both players and returns the game ID
func (s *AreaSuite) joinBoth() model.GameID {
	resp, err := s.area.HandleCommand(model.Command{Type: model.CommandJoinGame}, s.alice)
	s.Require().NoError(err)
	_, err = s.area.HandleCommand(model.Command{Type: model.CommandJoinGame}, s.bob)
	s.Require().NoError(err)
	return resp.GameID
}

// startBoth readies both players
func (s *AreaSuite) startBoth(id model.GameID) {
	_, err := s.area.HandleCommand(model.Command{Type: model.CommandStartGame, GameID: id}, s.alice)
	s.Require().NoError(err)
	_, err = s.area.HandleCommand(model.Command{Type: model.CommandStartGame, GameID: id}, s.bob)
	s.Require().NoError(err)
}

// move drops a piece in the given column for the player, deriving the row
func (s *AreaSuite) move(id model.GameID, p model.Player, col int) error {
	st := s.area.Game().(*game.ConnectFourGame).State()
	row := model.ConnectFourRows - 1 - st.ColumnOccupancy(col)
	_, err := s.area.HandleCommand(model.Command{
		Type:   model.CommandGameMove,
		GameID: id,
		Move:   &model.Move{Row: row, Col: col},
	}, p)
	return err
}

// winGame plays alice to a vertical win
func (s *AreaSuite) winGame(id model.GameID) {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.move(id, s.alice, 0))
		s.Require().NoError(s.move(id, s.bob, 1))
	}
	s.Require().NoError(s.move(id, s.alice, 0))
}

// Dispatch

func (s *AreaSuite) TestJoinGameCreatesGame() {
	resp, err := s.area.HandleCommand(model.Command{Type: model.CommandJoinGame}, s.alice)
	s.Require().NoError(err)

	s.NotEmpty(resp.GameID)
	s.Require().NotNil(s.area.Game())
	s.Equal(resp.GameID, s.area.Game().ID())
	s.Equal(model.GameWaitingForPlayers, s.area.Game().Status())
}

func (s *AreaSuite) TestJoinGameReusesPendingGame() {
	first, err := s.area.HandleCommand(model.Command{Type: model.CommandJoinGame}, s.alice)
	s.Require().NoError(err)
	second, err := s.area.HandleCommand(model.Command{Type: model.CommandJoinGame}, s.bob)
	s.Require().NoError(err)

	s.Equal(first.GameID, second.GameID)
}

func (s *AreaSuite) TestJoinAfterGameOverStartsNewGame() {
	id := s.joinBoth()
	s.startBoth(id)
	s.winGame(id)

	resp, err := s.area.HandleCommand(model.Command{Type: model.CommandJoinGame}, s.alice)
	s.Require().NoError(err)
	s.NotEqual(id, resp.GameID)
}

func (s *AreaSuite) TestNewGameAfterOverRotatesFirstPlayer() {
	id := s.joinBoth()
	s.startBoth(id)
	s.winGame(id)

	next, err := s.area.HandleCommand(model.Command{Type: model.CommandJoinGame}, s.alice)
	s.Require().NoError(err)
	_, err = s.area.HandleCommand(model.Command{Type: model.CommandJoinGame}, s.bob)
	s.Require().NoError(err)
	s.startBoth(next.GameID)

	st := s.area.Game().(*game.ConnectFourGame).State()
	s.Equal(model.Yellow, st.FirstPlayer)
	s.Equal(s.alice.ID, st.Red)
	s.Equal(s.bob.ID, st.Yellow)
}

func (s *AreaSuite) TestCommandWithoutGameFails() {
	_, err := s.area.HandleCommand(model.Command{Type: model.CommandStartGame, GameID: "G"}, s.alice)
	s.ErrorIs(err, model.ErrGameNotInProgress)

	_, err = s.area.HandleCommand(model.Command{
		Type: model.CommandGameMove, GameID: "G", Move: &model.Move{Row: 5, Col: 0},
	}, s.alice)
	s.ErrorIs(err, model.ErrGameNotInProgress)

	_, err = s.area.HandleCommand(model.Command{Type: model.CommandLeaveGame, GameID: "G"}, s.alice)
	s.ErrorIs(err, model.ErrGameNotInProgress)
}

func (s *AreaSuite) TestCommandWithStaleGameIDFails() {
	s.joinBoth()

	_, err := s.area.HandleCommand(model.Command{Type: model.CommandStartGame, GameID: "STALE"}, s.alice)
	s.ErrorIs(err, model.ErrGameIDMismatch)
}

func (s *AreaSuite) TestUnknownCommandFails() {
	_, err := s.area.HandleCommand(model.Command{Type: "Dance"}, s.alice)
	s.ErrorIs(err, model.ErrUnknownCommand)
}

func (s *AreaSuite) TestConversationAreaRejectsGameCommands() {
	conv := New(
		model.AreaDefinition{ID: "chat", Type: model.AreaConversation},
		s.random,
		testutil.NopLogger(),
		nil,
	)

	_, err := conv.HandleCommand(model.Command{Type: model.CommandJoinGame}, s.alice)
	s.ErrorIs(err, model.ErrNotAGameArea)
}

// Notifications

func (s *AreaSuite) TestEachSuccessfulCommandNotifiesOnce() {
	id := s.joinBoth()
	s.startBoth(id)
	s.Len(s.snapshots, 4)

	s.Require().NoError(s.move(id, s.alice, 0))
	s.Len(s.snapshots, 5)
}

func (s *AreaSuite) TestFailedCommandDoesNotNotify() {
	id := s.joinBoth()
	s.startBoth(id)
	before := len(s.snapshots)

	s.Error(s.move(id, s.bob, 0))
	s.Len(s.snapshots, before)
}

func (s *AreaSuite) TestSnapshotReflectsStateAfterCommand() {
	s.joinBoth()

	last := s.snapshots[len(s.snapshots)-1]
	s.Require().NotNil(last.Game)
	s.Len(last.Game.Players, 2)
}

// History

func (s *AreaSuite) TestWinRecordsHistoryOnce() {
	id := s.joinBoth()
	s.startBoth(id)
	s.winGame(id)

	history := s.area.History()
	s.Require().Len(history, 1)
	s.Equal(id, history[0].GameID)
	s.Equal(map[string]int{"alice": 1, "bob": 0}, history[0].Scores)
}

func (s *AreaSuite) TestTieRecordsZeroForBothPlayers() {
	id := s.joinBoth()
	s.startBoth(id)
	cols := []int{
		1, 0, 0, 1, 0, 0, 3, 0, 0, 1, 1, 2, 1, 1, 2, 3, 2, 2, 5, 2, 2,
		3, 3, 4, 3, 3, 4, 5, 4, 4, 6, 4, 4, 5, 5, 6, 5, 6, 6, 5, 6, 6,
	}
	for i, col := range cols {
		p := s.alice
		if i%2 == 1 {
			p = s.bob
		}
		s.Require().NoError(s.move(id, p, col))
	}

	history := s.area.History()
	s.Require().Len(history, 1)
	s.Equal(map[string]int{"alice": 0, "bob": 0}, history[0].Scores)
}

func (s *AreaSuite) TestLeaveEndingGameRecordsBothPlayers() {
	id := s.joinBoth()
	s.startBoth(id)

	_, err := s.area.HandleCommand(model.Command{Type: model.CommandLeaveGame, GameID: id}, s.alice)
	s.Require().NoError(err)

	history := s.area.History()
	s.Require().Len(history, 1)
	s.Equal(map[string]int{"alice": 0, "bob": 1}, history[0].Scores)
}

func (s *AreaSuite) TestLeaveAfterGameOverAddsNoHistory() {
	id := s.joinBoth()
	s.startBoth(id)
	s.winGame(id)

	_, err := s.area.HandleCommand(model.Command{Type: model.CommandLeaveGame, GameID: id}, s.bob)
	s.Require().NoError(err)
	s.Len(s.area.History(), 1)
}

func (s *AreaSuite) TestHistoryAccumulatesAcrossGames() {
	id := s.joinBoth()
	s.startBoth(id)
	s.winGame(id)

	next, err := s.area.HandleCommand(model.Command{Type: model.CommandJoinGame}, s.alice)
	s.Require().NoError(err)
	_, err = s.area.HandleCommand(model.Command{Type: model.CommandJoinGame}, s.bob)
	s.Require().NoError(err)
	s.startBoth(next.GameID)

	_, err = s.area.HandleCommand(model.Command{Type: model.CommandLeaveGame, GameID: next.GameID}, s.bob)
	s.Require().NoError(err)

	history := s.area.History()
	s.Require().Len(history, 2)
	s.Equal(id, history[0].GameID)
	s.Equal(next.GameID, history[1].GameID)
}

// Occupancy

func (s *AreaSuite) TestRemoveOccupantForfeitsGame() {
	s.area.AddOccupant(s.alice)
	s.area.AddOccupant(s.bob)
	id := s.joinBoth()
	s.startBoth(id)

	s.area.RemoveOccupant(s.alice)

	s.Equal(model.GameOver, s.area.Game().Status())
	s.Equal(s.bob.ID, s.area.Game().Winner())
	history := s.area.History()
	s.Require().Len(history, 1)
	s.Equal(map[string]int{"alice": 0, "bob": 1}, history[0].Scores)
	s.Equal([]model.Player{s.bob}, s.area.Occupants())
}

func (s *AreaSuite) TestRemoveOccupantNotInGame() {
	s.area.AddOccupant(s.carol)
	id := s.joinBoth()
	s.startBoth(id)

	s.area.RemoveOccupant(s.carol)

	s.Equal(model.GameInProgress, s.area.Game().Status())
	s.Empty(s.area.History())
}

func (s *AreaSuite) TestAddOccupantIsIdempotent() {
	s.area.AddOccupant(s.alice)
	s.area.AddOccupant(s.alice)

	s.Len(s.area.Occupants(), 1)
}
