package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/codewords/internal/dependencies/mocks"
	"github.com/mcoot/codewords/internal/model"
	"github.com/mcoot/codewords/internal/storage/memory"
	"github.com/mcoot/codewords/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(memory.New(), s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func finishedGame(id model.GameID) *model.Game {
	return &model.Game{
		ID:         id,
		Code:       "ABC123",
		Status:     model.GameStatusFinished,
		Winner:     model.ColorBlue,
		CluesGiven: 4,
		RedTeam:    &model.Team{Spymaster: "p1", Operatives: []model.PlayerID{"p2"}},
		BlueTeam:   &model.Team{Spymaster: "p3", Operatives: []model.PlayerID{"p4", "p5"}},
		Board: []model.Card{
			{ID: "card-0", Team: model.ColorRed, Revealed: true},
			{ID: "card-1", Team: model.ColorBlue, Revealed: true},
			{ID: "card-2", Team: model.ColorNeutral},
		},
	}
}

func (s *ServiceSuite) TestRecord() {
	result, err := s.service.Record(s.ctx, finishedGame("game-1"))
	s.Require().NoError(err)

	s.Equal(model.ColorBlue, result.Winner)
	s.Equal(4, result.CluesGiven)
	s.Equal(2, result.CardsRevealed)
	s.Equal([]model.PlayerID{"p1", "p2"}, result.RedPlayers)
	s.Equal([]model.PlayerID{"p3", "p4", "p5"}, result.BluePlayers)
	s.Equal(s.clock.Now(), result.FinishedAt)

	stored, err := s.service.Get(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(result.Winner, stored.Winner)
}

func (s *ServiceSuite) TestRecordRejectsUnfinishedGame() {
	g := finishedGame("game-1")
	g.Status = model.GameStatusPlaying
	g.Winner = ""

	_, err := s.service.Record(s.ctx, g)
	s.ErrorIs(err, ErrGameNotFinished)
}

func (s *ServiceSuite) TestGetUnknown() {
	_, err := s.service.Get(s.ctx, "missing")
	s.ErrorIs(err, model.ErrResultNotFound)
}

func (s *ServiceSuite) TestRecentNewestFirst() {
	for i := range 3 {
		_, err := s.service.Record(s.ctx, finishedGame(model.GameID(fmt.Sprintf("game-%d", i))))
		s.Require().NoError(err)
	}

	results, err := s.service.Recent(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal(model.GameID("game-2"), results[0].GameID)
	s.Equal(model.GameID("game-1"), results[1].GameID)
}

func (s *ServiceSuite) TestRecentDefaultAndCap() {
	for i := range MaxLimit + 5 {
		_, err := s.service.Record(s.ctx, finishedGame(model.GameID(fmt.Sprintf("game-%d", i))))
		s.Require().NoError(err)
	}

	results, err := s.service.Recent(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(results, DefaultLimit)

	results, err = s.service.Recent(s.ctx, MaxLimit*2)
	s.Require().NoError(err)
	s.Len(results, MaxLimit)
}
