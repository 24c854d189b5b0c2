package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Round:
		o.printRound(v)
	case Archive:
		o.printArchive(v)
	case PlayResult:
		o.printPlayResult(v)
	case GuessResult:
		o.printRound(v.Round)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Credit       float64   `json:"credit"`
	CurrentRound *string   `json:"current_round"`
	CreatedAt    time.Time `json:"created_at"`
}

// Round response type
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

// Archive response type
type Archive struct {
	ID           string             `json:"id"`
	Sequence     int64              `json:"sequence"`
	SecretNumber float64            `json:"secret_number"`
	Participants []string           `json:"participants"`
	Guesses      map[string]float64 `json:"guesses"`
	FinishedAt   time.Time          `json:"finished_at"`
	ArchivedAt   time.Time          `json:"archived_at"`
}

// PlayResult combines player and round
type PlayResult struct {
	Player Player `json:"player"`
	Round  Round  `json:"round"`
}

// GuessResult wraps the round after a guess
type GuessResult struct {
	Round Round `json:"round"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.ID, p.Kind)
	fmt.Printf("Credit: %.2f\n", p.Credit)
	if p.CurrentRound != nil {
		fmt.Printf("Current Round: %s\n", *p.CurrentRound)
	}
}

func (o *Output) printRound(r Round) {
	fmt.Printf("Round: %s (#%d)\n", r.ID, r.Sequence)
	fmt.Printf("State: %s\n", r.State)
	if r.SecretNumber != nil {
		fmt.Printf("Secret Number: %.2f\n", *r.SecretNumber)
	}
	fmt.Printf("Participants (%d):\n", len(r.Participants))
	for _, pid := range r.Participants {
		if guess, ok := r.Guesses[pid]; ok {
			fmt.Printf("  %s guessed %.2f\n", pid, guess)
		} else {
			fmt.Printf("  %s\n", pid)
		}
	}
}

func (o *Output) printArchive(a Archive) {
	fmt.Printf("Archived Round: %s (#%d)\n", a.ID, a.Sequence)
	fmt.Printf("Secret Number: %.2f\n", a.SecretNumber)
	fmt.Printf("Finished At: %s\n", a.FinishedAt.Format(time.RFC3339))
	guessers := make([]string, 0, len(a.Guesses))
	for pid := range a.Guesses {
		guessers = append(guessers, pid)
	}
	sort.Strings(guessers)
	fmt.Printf("Guesses (%d):\n", len(guessers))
	for _, pid := range guessers {
		fmt.Printf("  %s guessed %.2f\n", pid, a.Guesses[pid])
	}
}

func (o *Output) printPlayResult(p PlayResult) {
	o.printPlayer(p.Player)
	fmt.Println()
	o.printRound(p.Round)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
