package model

import (
	"fmt"
	"time"
)

// RoundArchive is a read-only snapshot of a finished round, stored
// separately from live rounds so the live collection stays small.
// It is a distinct record type rather than a reuse of Round: an archive
// never carries live-round mutation semantics.
type RoundArchive struct {
	ID           RoundID
	SecretNumber Number
	Sequence     int64
	Participants []PlayerID
	Guesses      map[PlayerID]Number
	FinishedAt   time.Time
	ArchivedAt   time.Time
}

// NewRoundArchive snapshots a finished round. The participant set and
// guess ledger are deep-copied so later mutation of the source round
// cannot leak into the archive record. Archiving a round in any state
// other than finished is a broken invariant and fails loudly.
func NewRoundArchive(round *Round, archivedAt time.Time) (*RoundArchive, error) {
	if round.State != RoundStateFinished {
		return nil, fmt.Errorf("%w: round %s is %s", ErrRoundNotFinished, round.ID, round.State)
	}

	participants := make([]PlayerID, len(round.Participants))
	copy(participants, round.Participants)

	guesses := make(map[PlayerID]Number, len(round.Guesses))
	for id, n := range round.Guesses {
		guesses[id] = n
	}

	return &RoundArchive{
		ID:           round.ID,
		SecretNumber: round.SecretNumber,
		Sequence:     round.Sequence,
		Participants: participants,
		Guesses:      guesses,
		FinishedAt:   round.UpdatedAt,
		ArchivedAt:   archivedAt,
	}, nil
}
