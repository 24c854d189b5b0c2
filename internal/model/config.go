package model

// GameConfig holds the table parameters. It is passed into the round
// controller explicitly so tests can run with alternative values.
type GameConfig struct {
	// TableCapacity is the fixed number of participants per round,
	// including the requesting human player.
	TableCapacity int

	// ParticipationCost is debited from every participant when a round starts.
	ParticipationCost Credit

	// MaxNumber is the exclusive upper bound for secret numbers and guesses.
	MaxNumber Number

	// Step is the quantization granularity; every generated number and
	// accepted guess is a multiple of it.
	Step Number
}

// DefaultGameConfig returns the standard table: 5 seats, 10 credit
// buy-in, numbers in [0, 10.00) quantized to 0.01.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		TableCapacity:     5,
		ParticipationCost: 1000,
		MaxNumber:         1000,
		Step:              1,
	}
}

// MaxGuess returns the largest submittable guess, MaxNumber - Step.
func (c GameConfig) MaxGuess() Number {
	return c.MaxNumber - c.Step
}

// ValidGuess reports whether n is a positive, step-aligned number
// within [Step, MaxNumber-Step]. Guess validation belongs to the API
// boundary; the round controller trusts its input.
func (c GameConfig) ValidGuess(n Number) bool {
	if n <= 0 || n > c.MaxGuess() {
		return false
	}
	return n%c.Step == 0
}
