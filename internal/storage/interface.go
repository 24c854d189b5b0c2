package storage

import (
	"context"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
)

// Storage defines the interface for data persistence. The stores are
// passive: all business rules live in the service layer.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Round operations
	GetRound(ctx context.Context, id model.RoundID) (*model.Round, error)
	DeleteRound(ctx context.Context, id model.RoundID) error

	// NextRoundSequence returns a monotonically increasing round counter
	NextRoundSequence(ctx context.Context) (int64, error)

	// ApplyRoundChange persists a round together with its participant
	// players as one atomic unit: either every record is written or
	// none are. The round's Version must be exactly one greater than
	// the stored version (or 1 for a new round); otherwise the write is
	// rejected with model.ErrRoundConflict and nothing is persisted.
	ApplyRoundChange(ctx context.Context, round *model.Round, players []*model.Player) error

	// Archive operations
	SaveArchive(ctx context.Context, archive *model.RoundArchive) error
	GetArchive(ctx context.Context, id model.RoundID) (*model.RoundArchive, error)
}
