package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberFromFloat(t *testing.T) {
	cases := []struct {
		name  string
		input float64
		want  Number
		ok    bool
	}{
		{"zero", 0, 0, true},
		{"whole", 5, 500, true},
		{"hundredths", 4.37, 437, true},
		{"near max", 9.99, 999, true},
		{"thousandths", 3.456, 0, false},
		{"negative", -0.01, 0, false},
		{"nan", math.NaN(), 0, false},
		{"positive inf", math.Inf(1), 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NumberFromFloat(tc.input)
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNumberFloatRoundTrip(t *testing.T) {
	// Every representable value survives the trip through float64
	for n := Number(0); n < 1000; n++ {
		got, err := NumberFromFloat(n.Float64())
		require.NoError(t, err)
		require.Equal(t, n, got)
	}
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "0.00", Number(0).String())
	assert.Equal(t, "0.01", Number(1).String())
	assert.Equal(t, "4.37", Number(437).String())
	assert.Equal(t, "10.00", Number(1000).String())
}

func TestCreditString(t *testing.T) {
	assert.Equal(t, "10.00", Credit(1000).String())
	assert.Equal(t, "-9.90", Credit(-990).String())
	assert.Equal(t, "-0.10", Credit(-10).String())
}

func TestGameConfigValidGuess(t *testing.T) {
	cfg := DefaultGameConfig()

	assert.Equal(t, Number(999), cfg.MaxGuess())

	assert.True(t, cfg.ValidGuess(1))
	assert.True(t, cfg.ValidGuess(437))
	assert.True(t, cfg.ValidGuess(999))

	assert.False(t, cfg.ValidGuess(0))
	assert.False(t, cfg.ValidGuess(1000))
	assert.False(t, cfg.ValidGuess(-1))
}

func TestGameConfigCoarserStep(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Step = 25

	assert.True(t, cfg.ValidGuess(25))
	assert.True(t, cfg.ValidGuess(975))
	assert.False(t, cfg.ValidGuess(30))
}

func TestNewRoundArchiveRequiresFinishedState(t *testing.T) {
	round := &Round{
		ID:    "ROUND1",
		State: RoundStateStarted,
	}

	_, err := NewRoundArchive(round, round.UpdatedAt)
	assert.ErrorIs(t, err, ErrRoundNotFinished)
}

func TestNewRoundArchiveDeepCopies(t *testing.T) {
	round := &Round{
		ID:           "ROUND1",
		State:        RoundStateFinished,
		Participants: []PlayerID{"alice"},
		Guesses:      map[PlayerID]Number{"alice": 300},
	}

	archive, err := NewRoundArchive(round, round.UpdatedAt)
	require.NoError(t, err)

	round.Participants[0] = "mallory"
	round.Guesses["alice"] = 999

	assert.Equal(t, PlayerID("alice"), archive.Participants[0])
	assert.Equal(t, Number(300), archive.Guesses["alice"])
}
