package postgres

import (
	"encoding/json"
	"time"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
)

// Database records. Participant lists and guess ledgers are stored as
// JSON columns; they are only ever read and written whole.

type playerRecord struct {
	ID           string `gorm:"primaryKey"`
	Kind         string
	Credit       int64
	CurrentRound *string
	CreatedAt    time.Time
}

func (playerRecord) TableName() string { return "players" }

type roundRecord struct {
	ID           string `gorm:"primaryKey"`
	SecretNumber int64
	Sequence     int64
	State        string
	Participants string `gorm:"type:jsonb"`
	Guesses      string `gorm:"type:jsonb"`
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (roundRecord) TableName() string { return "rounds" }

type archiveRecord struct {
	ID           string `gorm:"primaryKey"`
	SecretNumber int64
	Sequence     int64
	Participants string `gorm:"type:jsonb"`
	Guesses      string `gorm:"type:jsonb"`
	FinishedAt   time.Time
	ArchivedAt   time.Time
}

func (archiveRecord) TableName() string { return "round_archives" }

type sequenceRecord struct {
	Name  string `gorm:"primaryKey"`
	Value int64
}

func (sequenceRecord) TableName() string { return "sequences" }

func playerToRecord(p *model.Player) *playerRecord {
	rec := &playerRecord{
		ID:        string(p.ID),
		Kind:      string(p.Kind),
		Credit:    int64(p.Credit),
		CreatedAt: p.CreatedAt,
	}
	if p.CurrentRound != nil {
		r := string(*p.CurrentRound)
		rec.CurrentRound = &r
	}
	return rec
}

func (rec *playerRecord) toModel() *model.Player {
	p := &model.Player{
		ID:        model.PlayerID(rec.ID),
		Kind:      model.PlayerKind(rec.Kind),
		Credit:    model.Credit(rec.Credit),
		CreatedAt: rec.CreatedAt,
	}
	if rec.CurrentRound != nil {
		r := model.RoundID(*rec.CurrentRound)
		p.CurrentRound = &r
	}
	return p
}

func roundToRecord(r *model.Round) (*roundRecord, error) {
	participants, err := json.Marshal(r.Participants)
	if err != nil {
		return nil, err
	}
	guesses, err := json.Marshal(r.Guesses)
	if err != nil {
		return nil, err
	}
	return &roundRecord{
		ID:           string(r.ID),
		SecretNumber: int64(r.SecretNumber),
		Sequence:     r.Sequence,
		State:        string(r.State),
		Participants: string(participants),
		Guesses:      string(guesses),
		Version:      r.Version,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}

func (rec *roundRecord) toModel() (*model.Round, error) {
	r := &model.Round{
		ID:           model.RoundID(rec.ID),
		SecretNumber: model.Number(rec.SecretNumber),
		Sequence:     rec.Sequence,
		State:        model.RoundState(rec.State),
		Version:      rec.Version,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(rec.Participants), &r.Participants); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rec.Guesses), &r.Guesses); err != nil {
		return nil, err
	}
	return r, nil
}

func archiveToRecord(a *model.RoundArchive) (*archiveRecord, error) {
	participants, err := json.Marshal(a.Participants)
	if err != nil {
		return nil, err
	}
	guesses, err := json.Marshal(a.Guesses)
	if err != nil {
		return nil, err
	}
	return &archiveRecord{
		ID:           string(a.ID),
		SecretNumber: int64(a.SecretNumber),
		Sequence:     a.Sequence,
		Participants: string(participants),
		Guesses:      string(guesses),
		FinishedAt:   a.FinishedAt,
		ArchivedAt:   a.ArchivedAt,
	}, nil
}

func (rec *archiveRecord) toModel() (*model.RoundArchive, error) {
	a := &model.RoundArchive{
		ID:           model.RoundID(rec.ID),
		SecretNumber: model.Number(rec.SecretNumber),
		Sequence:     rec.Sequence,
		FinishedAt:   rec.FinishedAt,
		ArchivedAt:   rec.ArchivedAt,
	}
	if err := json.Unmarshal([]byte(rec.Participants), &a.Participants); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rec.Guesses), &a.Guesses); err != nil {
		return nil, err
	}
	return a, nil
}
