package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// PlayerKind distinguishes human players from computer-controlled seats
type PlayerKind string

const (
	PlayerKindHuman    PlayerKind = "human"
	PlayerKindComputer PlayerKind = "computer"
)

// Player represents a game participant. Credit balances are mutated
// only by the round controller (debit on start, payout on finish).
type Player struct {
	ID     PlayerID
	Kind   PlayerKind
	Credit Credit

	// CurrentRound is the single live round the player is seated at.
	// Nil when the player has never played or their last round was
	// finished and archived.
	CurrentRound *RoundID

	CreatedAt time.Time
}

// InRound reports whether the player currently references a live round
func (p *Player) InRound() bool {
	return p.CurrentRound != nil
}
