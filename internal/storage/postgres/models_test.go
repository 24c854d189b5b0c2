package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
)

func TestPlayerRecordRoundTrip(t *testing.T) {
	roundID := model.RoundID("ROUND1")
	player := &model.Player{
		ID:           "alice",
		Kind:         model.PlayerKindHuman,
		Credit:       -1000,
		CurrentRound: &roundID,
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	got := playerToRecord(player).toModel()
	assert.Equal(t, player, got)
}

func TestPlayerRecordWithoutRound(t *testing.T) {
	player := &model.Player{
		ID:        "cpu-abc",
		Kind:      model.PlayerKindComputer,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	got := playerToRecord(player).toModel()
	assert.Nil(t, got.CurrentRound)
	assert.Equal(t, player, got)
}

func TestRoundRecordRoundTrip(t *testing.T) {
	round := &model.Round{
		ID:           "ROUND1",
		SecretNumber: 500,
		Sequence:     7,
		State:        model.RoundStateStarted,
		Participants: []model.PlayerID{"alice", "cpu-1"},
		Guesses:      map[model.PlayerID]model.Number{"alice": 300, "cpu-1": 700},
		Version:      2,
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC),
	}

	rec, err := roundToRecord(round)
	require.NoError(t, err)
	got, err := rec.toModel()
	require.NoError(t, err)
	assert.Equal(t, round, got)
}

func TestArchiveRecordRoundTrip(t *testing.T) {
	archive := &model.RoundArchive{
		ID:           "ROUND1",
		SecretNumber: 500,
		Sequence:     7,
		Participants: []model.PlayerID{"alice", "cpu-1"},
		Guesses:      map[model.PlayerID]model.Number{"alice": 300, "cpu-1": 700},
		FinishedAt:   time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC),
		ArchivedAt:   time.Date(2024, 1, 1, 12, 6, 0, 0, time.UTC),
	}

	rec, err := archiveToRecord(archive)
	require.NoError(t, err)
	got, err := rec.toModel()
	require.NoError(t, err)
	assert.Equal(t, archive, got)
}
