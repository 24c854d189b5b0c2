package game

import (
	"context"
	"log/slog"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/services/player"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/services/round"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/services/secretnumber"
)

// Controller is the orchestration facade: it translates external play
// and guess requests into player resolution and round engine calls.
// It is the only component touching both the player service and the
// round controller directly.
type Controller struct {
	players *player.Service
	rounds  *round.Controller
	secrets *secretnumber.Service
	logger  *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	players *player.Service,
	rounds *round.Controller,
	secrets *secretnumber.Service,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		players: players,
		rounds:  rounds,
		secrets: secrets,
		logger:  logger.With(slog.String("component", "game-controller")),
	}
}

// RequestPlay resolves or creates the player and seats them at their
// round, creating one if needed. An empty player id means "create a
// new player"; clients must persist the returned id to keep playing as
// the same player.
func (c *Controller) RequestPlay(ctx context.Context, playerID model.PlayerID) (*model.Player, *model.Round, error) {
	p, err := c.players.FindOrCreate(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	r, err := c.rounds.Create(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}

	// Create may have assigned the player to a fresh round; reload so
	// the caller sees the current reference.
	p, err = c.players.Get(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}

	return p, r, nil
}

// RequestGuess submits the player's guess for their current round,
// synthesizing guesses for all computer participants, and hands the
// complete ledger to the round engine.
func (c *Controller) RequestGuess(ctx context.Context, playerID model.PlayerID, guess model.Number) (*model.Round, error) {
	p, err := c.players.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p.CurrentRound == nil {
		return nil, model.ErrNoActiveRound
	}

	r, err := c.rounds.GetRound(ctx, *p.CurrentRound)
	if err != nil {
		return nil, err
	}

	guesses := make(map[model.PlayerID]model.Number, len(r.Participants))
	for _, participant := range r.Participants {
		if participant == playerID {
			guesses[participant] = guess
		} else {
			guesses[participant] = c.secrets.ComputerGuess()
		}
	}

	return c.rounds.SubmitGuesses(ctx, r.ID, guesses)
}

// GetPlayer retrieves a player by id
func (c *Controller) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return c.players.Get(ctx, id)
}

// GetRound retrieves a live round by id
func (c *Controller) GetRound(ctx context.Context, id model.RoundID) (*model.Round, error) {
	return c.rounds.GetRound(ctx, id)
}

// GetArchive retrieves an archived round by id
func (c *Controller) GetArchive(ctx context.Context, id model.RoundID) (*model.RoundArchive, error) {
	return c.rounds.GetArchive(ctx, id)
}
