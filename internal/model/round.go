package model

import "time"

// RoundID uniquely identifies a round
type RoundID string

// RoundState represents the current phase of a round's lifecycle.
// States only ever advance: created -> started -> finished.
type RoundState string

const (
	RoundStateCreated  RoundState = "created"  // Seats assigned, waiting for guesses
	RoundStateStarted  RoundState = "started"  // Guesses collected, buy-ins debited
	RoundStateFinished RoundState = "finished" // Payouts distributed
)

// Round represents a single play instance with a hidden target number
type Round struct {
	ID           RoundID
	SecretNumber Number

	// Sequence is a monotonic, informational round counter
	Sequence int64

	State RoundState

	// Participants is fixed at creation (table capacity) and never changed
	Participants []PlayerID

	// Guesses maps each participant to their submitted number. Empty
	// while the round is created; exactly one entry per participant
	// from started onward.
	Guesses map[PlayerID]Number

	// Version guards concurrent writes; the storage layer rejects an
	// ApplyRoundChange whose version does not follow the stored one.
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasParticipant reports whether the player is seated at this round
func (r *Round) HasParticipant(id PlayerID) bool {
	for _, p := range r.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// MissingGuesses returns the participants without an entry in the guess ledger
func (r *Round) MissingGuesses() []PlayerID {
	var missing []PlayerID
	for _, p := range r.Participants {
		if _, ok := r.Guesses[p]; !ok {
			missing = append(missing, p)
		}
	}
	return missing
}
