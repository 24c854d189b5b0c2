package postgres

import (
	"context"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/storage"
)

const roundSequenceName = "round"

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	db *gorm.DB
}

// New connects to Postgres and migrates the schema
func New(cfg Config) (*Storage, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := db.AutoMigrate(&playerRecord{}, &roundRecord{}, &archiveRecord{}, &sequenceRecord{}); err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// NewWithDB creates a Postgres storage with an existing gorm handle (for testing)
func NewWithDB(db *gorm.DB) (*Storage, error) {
	if err := db.AutoMigrate(&playerRecord{}, &roundRecord{}, &archiveRecord{}, &sequenceRecord{}); err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the underlying connection pool
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	return s.db.WithContext(ctx).Save(playerToRecord(player)).Error
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var rec playerRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", string(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return rec.toModel(), nil
}

// Round operations

func (s *Storage) GetRound(ctx context.Context, id model.RoundID) (*model.Round, error) {
	var rec roundRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", string(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrRoundNotFound
		}
		return nil, err
	}
	return rec.toModel()
}

func (s *Storage) DeleteRound(ctx context.Context, id model.RoundID) error {
	return s.db.WithContext(ctx).Delete(&roundRecord{}, "id = ?", string(id)).Error
}

func (s *Storage) NextRoundSequence(ctx context.Context) (int64, error) {
	var next int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq sequenceRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&seq, "name = ?", roundSequenceName).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = sequenceRecord{Name: roundSequenceName}
		} else if err != nil {
			return err
		}
		seq.Value++
		next = seq.Value
		return tx.Save(&seq).Error
	})
	return next, err
}

// ApplyRoundChange writes the round and its participants in one
// database transaction with a row lock on the round. The version check
// mirrors the other backends: a stale writer loses with ErrRoundConflict.
func (s *Storage) ApplyRoundChange(ctx context.Context, round *model.Round, players []*model.Player) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored roundRecord
		var storedVersion int64
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&stored, "id = ?", string(round.ID)).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// New round, no stored version
		case err != nil:
			return err
		default:
			storedVersion = stored.Version
		}

		if round.Version != storedVersion+1 {
			return model.ErrRoundConflict
		}

		rec, err := roundToRecord(round)
		if err != nil {
			return err
		}
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		for _, p := range players {
			if err := tx.Save(playerToRecord(p)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Archive operations

func (s *Storage) SaveArchive(ctx context.Context, archive *model.RoundArchive) error {
	rec, err := archiveToRecord(archive)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Save(rec).Error
}

func (s *Storage) GetArchive(ctx context.Context, id model.RoundID) (*model.RoundArchive, error) {
	var rec archiveRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", string(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrArchiveNotFound
		}
		return nil, err
	}
	return rec.toModel()
}
