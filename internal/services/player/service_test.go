package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/dependencies/mocks"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/storage/memory"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestFindOrCreateWithEmptyIDCreatesPlayer() {
	s.random.QueueString("fresh-player-id")

	player, err := s.service.FindOrCreate(s.ctx, "")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("fresh-player-id"), player.ID)
	s.Equal(model.PlayerKindHuman, player.Kind)
	s.Equal(model.Credit(0), player.Credit)
	s.Nil(player.CurrentRound)
	s.Equal(s.clock.Now(), player.CreatedAt)
}

func (s *ServiceSuite) TestFindOrCreatePersistsNewPlayer() {
	s.random.QueueString("fresh-player-id")

	created, err := s.service.FindOrCreate(s.ctx, "")
	s.Require().NoError(err)

	stored, err := s.storage.GetPlayer(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, stored.ID)
}

func (s *ServiceSuite) TestFindOrCreateResolvesExistingPlayer() {
	existing := &model.Player{
		ID:        "alice",
		Kind:      model.PlayerKindHuman,
		Credit:    500,
		CreatedAt: s.clock.Now(),
	}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, existing))

	player, err := s.service.FindOrCreate(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.Credit(500), player.Credit)
}

func (s *ServiceSuite) TestFindOrCreateUnknownIDFails() {
	_, err := s.service.FindOrCreate(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestGetUnknownPlayer() {
	_, err := s.service.Get(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
