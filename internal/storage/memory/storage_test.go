package memory

import (
	"context"
	"testing"
	"time"

	"github.com/mcoot/codewords/internal/model"
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
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     true,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
	s.True(retrieved.IsGuest)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestPlayerIsCopiedOnSave() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	player.DisplayName = "Mallory"

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alice", retrieved.DisplayName)
}

// Registered player tests

func (s *StorageSuite) TestRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash",
	}
	s.Require().NoError(s.storage.SaveRegisteredPlayer(s.ctx, rp))

	byID, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("alice", byID.Username)

	byName, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), byName.PlayerID)

	_, err = s.storage.GetRegisteredPlayerByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Word pool tests

func (s *StorageSuite) TestGetWordsNotLoaded() {
	_, err := s.storage.GetWords(s.ctx)
	s.ErrorIs(err, model.ErrWordPoolNotLoaded)
}

func (s *StorageSuite) TestSaveWordsReplacesPool() {
	s.Require().NoError(s.storage.SaveWords(s.ctx, []string{"APPLE", "BANANA"}))
	s.Require().NoError(s.storage.SaveWords(s.ctx, []string{"CHERRY"}))

	words, err := s.storage.GetWords(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"CHERRY"}, words)
}

// History tests

func (s *StorageSuite) TestSaveAndGetGameResult() {
	result := &model.GameResult{
		GameID:      "game-1",
		Code:        "ABC234",
		Winner:      model.ColorRed,
		RedPlayers:  []model.PlayerID{"p1", "p2"},
		BluePlayers: []model.PlayerID{"p3", "p4"},
	}
	s.Require().NoError(s.storage.SaveGameResult(s.ctx, result))

	result.RedPlayers[0] = "changed"

	retrieved, err := s.storage.GetGameResult(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.ColorRed, retrieved.Winner)
	s.Equal([]model.PlayerID{"p1", "p2"}, retrieved.RedPlayers)
}

func (s *StorageSuite) TestGetGameResultNotFound() {
	_, err := s.storage.GetGameResult(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrResultNotFound)
}

func (s *StorageSuite) TestListGameResultsNewestFirst() {
	for _, id := range []model.GameID{"game-1", "game-2", "game-3"} {
		s.Require().NoError(s.storage.SaveGameResult(s.ctx, &model.GameResult{GameID: id}))
	}

	results, err := s.storage.ListGameResults(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal(model.GameID("game-3"), results[0].GameID)
	s.Equal(model.GameID("game-2"), results[1].GameID)
}

func (s *StorageSuite) TestListGameResultsResaveMovesToFront() {
	s.Require().NoError(s.storage.SaveGameResult(s.ctx, &model.GameResult{GameID: "game-1"}))
	s.Require().NoError(s.storage.SaveGameResult(s.ctx, &model.GameResult{GameID: "game-2"}))
	s.Require().NoError(s.storage.SaveGameResult(s.ctx, &model.GameResult{GameID: "game-1"}))

	results, err := s.storage.ListGameResults(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal(model.GameID("game-1"), results[0].GameID)
}

func (s *StorageSuite) TestListGameResultsNonPositiveLimit() {
	s.Require().NoError(s.storage.SaveGameResult(s.ctx, &model.GameResult{GameID: "game-1"}))

	results, err := s.storage.ListGameResults(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(results)
}
