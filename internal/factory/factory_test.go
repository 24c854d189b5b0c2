package factory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
)

type FactorySuite struct {
	suite.Suite
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) TestNewDefaultsToMemoryStorage() {
	app, err := New(Config{})
	s.Require().NoError(err)
	defer app.Close()

	s.NotNil(app.Storage)
	s.NotNil(app.GameController)
	s.NotNil(app.HubManager)
	s.Equal(model.DefaultGameConfig(), app.GameConfig)
}

func (s *FactorySuite) TestNewRejectsRedisWithoutConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}

func (s *FactorySuite) TestNewRejectsPostgresWithoutConfig() {
	_, err := New(Config{StorageType: StorageTypePostgres})
	s.Error(err)
}

func (s *FactorySuite) TestNewRejectsUnknownStorageType() {
	_, err := New(Config{StorageType: "etcd"})
	s.Error(err)
}

func (s *FactorySuite) TestTestAppRunsFullRound() {
	app := NewTestApp()
	defer app.Close()
	app.Start(s.T().Context())

	// Player id, round id, secret 5.00, computer names
	app.MockRandom.QueueString("player-1", "ROUND1")
	app.MockRandom.QueueIntn(500)
	app.MockRandom.QueueString("bot1", "bot2", "bot3", "bot4")

	p, r, err := app.GameController.RequestPlay(s.T().Context(), "")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), p.ID)

	// Computer guesses all above the secret
	app.MockRandom.QueueIntn(600, 700, 800, 900)
	_, err = app.GameController.RequestGuess(s.T().Context(), p.ID, 300)
	s.Require().NoError(err)

	s.Eventually(func() bool {
		round, err := app.GameController.GetRound(s.T().Context(), r.ID)
		return err == nil && round.State == model.RoundStateFinished
	}, time.Second, 10*time.Millisecond)

	settled, err := app.GameController.GetPlayer(s.T().Context(), p.ID)
	s.Require().NoError(err)
	s.Equal(model.Credit(1000), settled.Credit)
}
