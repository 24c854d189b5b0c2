package round

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/dependencies/clock"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/dependencies/random"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/events"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/services/secretnumber"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/storage"
)

const (
	// RoundIDAlphabet is the character set for generated round IDs
	RoundIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// RoundIDLength is the length of generated round IDs
	RoundIDLength = 12
	// archiveTimeout bounds a single background archival attempt
	archiveTimeout = 30 * time.Second
)

// Controller is the round lifecycle engine. It is the sole writer of
// round state, archive records, and player credit/round references.
//
// Every transition persists its reads-then-writes through a single
// ApplyRoundChange call, so either all changes within the operation
// become visible or none do. Lifecycle events are published only after
// that commit succeeds, and a transition is never rolled back by a
// later event or archival failure.
type Controller struct {
	storage storage.Storage
	secrets *secretnumber.Service
	bus     *events.Bus
	cfg     model.GameConfig
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
	locks   *keyedMutex
}

// NewController creates a new round Controller
func NewController(
	store storage.Storage,
	secrets *secretnumber.Service,
	bus *events.Bus,
	cfg model.GameConfig,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: store,
		secrets: secrets,
		bus:     bus,
		cfg:     cfg,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "round-controller")),
		locks:   newKeyedMutex(),
	}
}

// Create resolves the round the player takes part in right now.
//
// With no live round (or a finished one), it allocates a fresh round
// with a new secret number, seating the player plus capacity-1 newly
// created computer players. A finished prior round is archived in the
// background without blocking or failing the creation. A round still
// in created state is returned unchanged, and a started round rejects
// the request: a player holds at most one active round.
func (c *Controller) Create(ctx context.Context, playerID model.PlayerID) (*model.Round, error) {
	unlock := c.locks.Lock("player:" + string(playerID))
	defer unlock()

	player, err := c.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.CurrentRound != nil {
		current, err := c.storage.GetRound(ctx, *player.CurrentRound)
		switch {
		case errors.Is(err, model.ErrRoundNotFound):
			// Round already archived; a dangling reference is fine,
			// the new round will replace it.
		case err != nil:
			return nil, err
		case current.State == model.RoundStateCreated:
			return current, nil
		case current.State == model.RoundStateStarted:
			return nil, model.ErrAlreadyInRound
		default:
			// Finished round makes way for a new one and moves to the
			// archive off the critical path.
			c.archiveAsync(current.ID)
		}

		// The finish that took the prior round out of play commits its
		// payouts before the finished state becomes visible, so the
		// snapshot read above may predate them. Read the player back
		// after the state decision or the write below would revert the
		// settled credit.
		player, err = c.storage.GetPlayer(ctx, playerID)
		if err != nil {
			return nil, err
		}
	}

	sequence, err := c.storage.NextRoundSequence(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	round := &model.Round{
		ID:           model.RoundID(c.random.String(RoundIDLength, RoundIDAlphabet)),
		SecretNumber: c.secrets.SecretNumber(),
		Sequence:     sequence,
		State:        model.RoundStateCreated,
		Participants: make([]model.PlayerID, 0, c.cfg.TableCapacity),
		Guesses:      make(map[model.PlayerID]model.Number),
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	player.CurrentRound = &round.ID
	participants := []*model.Player{player}
	round.Participants = append(round.Participants, player.ID)

	for i := 0; i < c.cfg.TableCapacity-1; i++ {
		cpu := &model.Player{
			ID:           model.PlayerID("cpu-" + c.random.String(12, "abcdefghijklmnopqrstuvwxyz0123456789")),
			Kind:         model.PlayerKindComputer,
			CurrentRound: &round.ID,
			CreatedAt:    now,
		}
		participants = append(participants, cpu)
		round.Participants = append(round.Participants, cpu.ID)
	}

	if err := c.storage.ApplyRoundChange(ctx, round, participants); err != nil {
		c.logger.Error("failed to persist round",
			slog.String("round_id", string(round.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.publish(model.EventRoundCreated, round)

	c.logger.Info("round created",
		slog.String("round_id", string(round.ID)),
		slog.Int64("sequence", round.Sequence),
		slog.String("player_id", string(playerID)),
	)

	return round, nil
}

// SubmitGuesses records every participant's guess, debits the
// participation cost from all of them, and starts the round.
//
// A started round is an idempotent no-op; any other non-created state
// is rejected. The completeness check runs before any mutation: an
// incomplete submission leaves every balance and the round untouched.
func (c *Controller) SubmitGuesses(ctx context.Context, roundID model.RoundID, guesses map[model.PlayerID]model.Number) (*model.Round, error) {
	unlock := c.locks.Lock("round:" + string(roundID))
	defer unlock()

	round, err := c.storage.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	if round.State == model.RoundStateStarted {
		return round, nil
	}
	if round.State != model.RoundStateCreated {
		return nil, model.ErrRoundNotCreated
	}

	for _, participant := range round.Participants {
		if _, ok := guesses[participant]; !ok {
			return nil, model.ErrIncompleteGuesses
		}
	}

	players := make([]*model.Player, 0, len(round.Participants))
	for _, participant := range round.Participants {
		player, err := c.storage.GetPlayer(ctx, participant)
		if err != nil {
			return nil, err
		}
		player.Credit -= c.cfg.ParticipationCost
		round.Guesses[participant] = guesses[participant]
		players = append(players, player)
	}

	round.State = model.RoundStateStarted
	round.Version++
	round.UpdatedAt = c.clock.Now()

	if err := c.storage.ApplyRoundChange(ctx, round, players); err != nil {
		return nil, err
	}

	c.publish(model.EventRoundStarted, round)

	c.logger.Info("round started",
		slog.String("round_id", string(round.ID)),
		slog.Int("participants", len(round.Participants)),
	)

	return round, nil
}

// Finish distributes payouts and closes the round.
//
// Every participant with a guess strictly below the secret number is
// credited participation cost times the gap; a guess at or above the
// secret pays nothing. A finished round is an idempotent no-op. A
// participant without a guess here means SubmitGuesses's completeness
// guarantee was broken somewhere, which is an internal error.
func (c *Controller) Finish(ctx context.Context, roundID model.RoundID) (*model.Round, error) {
	unlock := c.locks.Lock("round:" + string(roundID))
	defer unlock()

	round, err := c.storage.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	if round.State == model.RoundStateFinished {
		return round, nil
	}
	if round.State != model.RoundStateStarted {
		return nil, model.ErrRoundNotStarted
	}

	players := make([]*model.Player, 0, len(round.Participants))
	for _, participant := range round.Participants {
		guess, ok := round.Guesses[participant]
		if !ok {
			err := fmt.Errorf("%w: round %s player %s", model.ErrMissingGuess, round.ID, participant)
			c.logger.Error("guess ledger incomplete at finish",
				slog.String("round_id", string(round.ID)),
				slog.String("player_id", string(participant)),
			)
			return nil, err
		}

		player, err := c.storage.GetPlayer(ctx, participant)
		if err != nil {
			return nil, err
		}
		if guess < round.SecretNumber {
			player.Credit += payout(c.cfg.ParticipationCost, round.SecretNumber-guess)
		}
		players = append(players, player)
	}

	round.State = model.RoundStateFinished
	round.Version++
	round.UpdatedAt = c.clock.Now()

	if err := c.storage.ApplyRoundChange(ctx, round, players); err != nil {
		return nil, err
	}

	c.publish(model.EventRoundFinished, round)

	c.logger.Info("round finished",
		slog.String("round_id", string(round.ID)),
		slog.String("secret_number", round.SecretNumber.String()),
	)

	return round, nil
}

// Archive snapshots a finished round into the archive store and
// removes it from the live store. A round that is already gone counts
// as archived, so duplicate invocations are no-ops.
func (c *Controller) Archive(ctx context.Context, roundID model.RoundID) error {
	unlock := c.locks.Lock("round:" + string(roundID))
	defer unlock()

	round, err := c.storage.GetRound(ctx, roundID)
	if errors.Is(err, model.ErrRoundNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	archive, err := model.NewRoundArchive(round, c.clock.Now())
	if err != nil {
		return err
	}

	if err := c.storage.SaveArchive(ctx, archive); err != nil {
		return err
	}
	if err := c.storage.DeleteRound(ctx, roundID); err != nil {
		return err
	}

	c.logger.Info("round archived",
		slog.String("round_id", string(roundID)),
		slog.Int64("sequence", archive.Sequence),
	)
	return nil
}

// GetRound retrieves a live round by id
func (c *Controller) GetRound(ctx context.Context, id model.RoundID) (*model.Round, error) {
	return c.storage.GetRound(ctx, id)
}

// GetArchive retrieves an archived round by id
func (c *Controller) GetArchive(ctx context.Context, id model.RoundID) (*model.RoundArchive, error) {
	return c.storage.GetArchive(ctx, id)
}

// StartAutoFinish subscribes the controller to its own started events
// and finishes each round as soon as it starts. The human guess and
// the computer guesses arrive in the same submission, so there is
// nothing left to wait for; started is transient from the caller's
// point of view and observers see started/finished back-to-back.
//
// The subscription is queued, not best-effort: a started round with no
// finish would strand its players, so this hand-off must survive any
// burst. The reaction loop runs until the context is cancelled or the
// bus is closed.
func (c *Controller) StartAutoFinish(ctx context.Context) {
	sub := c.bus.SubscribeQueued(model.EventRoundStarted)

	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				if _, err := c.Finish(ctx, ev.RoundID); err != nil {
					c.logger.Error("auto-finish failed",
						slog.String("round_id", string(ev.RoundID)),
						slog.String("error", err.Error()),
					)
				}
			}
		}
	}()
}

// archiveAsync moves a finished round to the archive without blocking
// the caller. Archival is second priority next to serving the new
// round; failures are logged and never surface.
func (c *Controller) archiveAsync(roundID model.RoundID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()

		if err := c.Archive(ctx, roundID); err != nil {
			c.logger.Error("cannot store round in archive",
				slog.String("round_id", string(roundID)),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// publish emits a lifecycle event for a round after its state change
// has been committed
func (c *Controller) publish(eventType model.EventType, round *model.Round) {
	c.bus.Publish(model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		RoundID:   round.ID,
		Sequence:  round.Sequence,
		State:     round.State,
	})
}

// payout computes cost * delta exactly in fixed-point: both operands
// are hundredths, so the product is divided back down by 100.
func payout(cost model.Credit, delta model.Number) model.Credit {
	return model.Credit(int64(cost) * int64(delta) / 100)
}
