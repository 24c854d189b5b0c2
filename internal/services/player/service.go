package player

import (
	"context"
	"log/slog"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/dependencies/clock"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/dependencies/random"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/storage"
)

const (
	// IDAlphabet is the character set for generated player IDs
	IDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// IDLength is the length of generated player IDs
	IDLength = 16
)

// Service resolves and creates players. Credit mutation belongs to the
// round controller, not here.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new player Service
func New(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		random:  rnd,
		logger:  logger.With(slog.String("component", "player-service")),
	}
}

// FindOrCreate resolves an existing player by id, or creates a fresh
// human player when no id is given. An unknown id is a client error,
// not a request to create.
func (s *Service) FindOrCreate(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if id != "" {
		return s.storage.GetPlayer(ctx, id)
	}

	player := &model.Player{
		ID:        model.PlayerID(s.random.String(IDLength, IDAlphabet)),
		Kind:      model.PlayerKindHuman,
		Credit:    0,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player created", slog.String("player_id", string(player.ID)))
	return player, nil
}

// Get retrieves a player by id
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}
