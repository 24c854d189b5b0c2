package secretnumber

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/dependencies/mocks"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/dependencies/random"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	cfg model.GameConfig
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.cfg = model.DefaultGameConfig()
}

func (s *ServiceSuite) TestSecretNumberUsesFullOutcomeSpace() {
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(0, 1, 999)
	service := New(s.cfg, rnd)

	s.Equal(model.Number(0), service.SecretNumber())
	s.Equal(model.Number(1), service.SecretNumber())
	s.Equal(model.Number(999), service.SecretNumber())
}

func (s *ServiceSuite) TestSecretNumberStaysInRange() {
	service := New(s.cfg, random.New())

	for i := 0; i < 1000; i++ {
		n := service.SecretNumber()
		s.GreaterOrEqual(n, model.Number(0))
		s.Less(n, s.cfg.MaxNumber)
		s.Zero(n % s.cfg.Step)
	}
}

func (s *ServiceSuite) TestComputerGuessStaysInRange() {
	service := New(s.cfg, random.New())

	for i := 0; i < 1000; i++ {
		n := service.ComputerGuess()
		s.GreaterOrEqual(n, model.Number(0))
		s.Less(n, s.cfg.MaxNumber)
		s.Zero(n % s.cfg.Step)
	}
}

func (s *ServiceSuite) TestCoarserStepScalesOutcomes() {
	cfg := s.cfg
	cfg.Step = 25 // quarter steps
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(3, 39)
	service := New(cfg, rnd)

	s.Equal(model.Number(75), service.SecretNumber())
	s.Equal(model.Number(975), service.SecretNumber())
}
