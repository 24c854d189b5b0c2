package secretnumber

import (
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/dependencies/random"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
)

// Service generates quantized game numbers. It has no state of its own
// beyond the injected entropy source.
type Service struct {
	cfg    model.GameConfig
	random random.Random
}

// New creates a new secret number Service
func New(cfg model.GameConfig, random random.Random) *Service {
	return &Service{
		cfg:    cfg,
		random: random,
	}
}

// SecretNumber returns the next number to be guessed during a round:
// uniform over the MaxNumber/Step discrete multiples of Step in
// [0, MaxNumber). It never returns MaxNumber or a misaligned value.
func (s *Service) SecretNumber() model.Number {
	steps := int(s.cfg.MaxNumber / s.cfg.Step)
	return model.Number(s.random.Intn(steps)) * s.cfg.Step
}

// ComputerGuess returns a computer player's guess. Currently the same
// distribution as SecretNumber, kept as a separate method so smarter
// strategies can be dropped in without touching callers.
func (s *Service) ComputerGuess() model.Number {
	return s.SecretNumber()
}
