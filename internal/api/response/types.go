package response

import (
	"time"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Credit       float64   `json:"credit"`
	CurrentRound *string   `json:"current_round"`
	CreatedAt    time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	var current *string
	if p.CurrentRound != nil {
		id := string(*p.CurrentRound)
		current = &id
	}
	return Player{
		ID:           string(p.ID),
		Kind:         string(p.Kind),
		Credit:       p.Credit.Float64(),
		CurrentRound: current,
		CreatedAt:    p.CreatedAt,
	}
}

// Round represents a round in API responses. The secret number is only
// revealed once the round has finished.
type Round struct {
	ID           string             `json:"id"`
	Sequence     int64              `json:"sequence"`
	State        string             `json:"state"`
	Participants []string           `json:"participants"`
	Guesses      map[string]float64 `json:"guesses,omitempty"`
	SecretNumber *float64           `json:"secret_number,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// RoundFromModel converts a model.Round to a response Round
func RoundFromModel(r *model.Round) Round {
	participants := make([]string, 0, len(r.Participants))
	for _, pid := range r.Participants {
		participants = append(participants, string(pid))
	}

	var guesses map[string]float64
	if len(r.Guesses) > 0 {
		guesses = make(map[string]float64, len(r.Guesses))
		for pid, n := range r.Guesses {
			guesses[string(pid)] = n.Float64()
		}
	}

	var secret *float64
	if r.State == model.RoundStateFinished {
		s := r.SecretNumber.Float64()
		secret = &s
	}

	return Round{
		ID:           string(r.ID),
		Sequence:     r.Sequence,
		State:        string(r.State),
		Participants: participants,
		Guesses:      guesses,
		SecretNumber: secret,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Archive represents an archived round in API responses
type Archive struct {
	ID           string             `json:"id"`
	Sequence     int64              `json:"sequence"`
	SecretNumber float64            `json:"secret_number"`
	Participants []string           `json:"participants"`
	Guesses      map[string]float64 `json:"guesses"`
	FinishedAt   time.Time          `json:"finished_at"`
	ArchivedAt   time.Time          `json:"archived_at"`
}

// ArchiveFromModel converts a model.RoundArchive to a response Archive
func ArchiveFromModel(a *model.RoundArchive) Archive {
	participants := make([]string, 0, len(a.Participants))
	for _, pid := range a.Participants {
		participants = append(participants, string(pid))
	}

	guesses := make(map[string]float64, len(a.Guesses))
	for pid, n := range a.Guesses {
		guesses[string(pid)] = n.Float64()
	}

	return Archive{
		ID:           string(a.ID),
		Sequence:     a.Sequence,
		SecretNumber: a.SecretNumber.Float64(),
		Participants: participants,
		Guesses:      guesses,
		FinishedAt:   a.FinishedAt,
		ArchivedAt:   a.ArchivedAt,
	}
}

// PlayResponse is the response for starting a round
type PlayResponse struct {
	Player Player `json:"player"`
	Round  Round  `json:"round"`
}

// GuessResponse is the response for submitting a guess
type GuessResponse struct {
	Round Round `json:"round"`
}
