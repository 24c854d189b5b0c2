package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(player.ID), data, s.cfg.PlayerTTL).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// Round operations

func (s *Storage) GetRound(ctx context.Context, id model.RoundID) (*model.Round, error) {
	data, err := s.client.Get(ctx, roundKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoundNotFound
		}
		return nil, err
	}

	var round model.Round
	if err := json.Unmarshal(data, &round); err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *Storage) DeleteRound(ctx context.Context, id model.RoundID) error {
	return s.client.Del(ctx, roundKey(id)).Err()
}

func (s *Storage) NextRoundSequence(ctx context.Context) (int64, error) {
	return s.client.Incr(ctx, sequenceKey()).Result()
}

// ApplyRoundChange writes the round and its participants inside a
// WATCH/MULTI/EXEC transaction. The optimistic version check rejects a
// write whose Version does not directly follow the stored one, and the
// WATCH aborts the transaction if another writer touched the round key
// between the read and the EXEC.
func (s *Storage) ApplyRoundChange(ctx context.Context, round *model.Round, players []*model.Player) error {
	key := roundKey(round.ID)

	txf := func(tx *redis.Tx) error {
		var storedVersion int64
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			// New round, no stored version
		case err != nil:
			return err
		default:
			var stored model.Round
			if err := json.Unmarshal(data, &stored); err != nil {
				return err
			}
			storedVersion = stored.Version
		}

		if round.Version != storedVersion+1 {
			return model.ErrRoundConflict
		}

		roundData, err := json.Marshal(round)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, roundData, s.cfg.RoundTTL)
			for _, p := range players {
				playerData, err := json.Marshal(p)
				if err != nil {
					return err
				}
				pipe.Set(ctx, playerKey(p.ID), playerData, s.cfg.PlayerTTL)
			}
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrRoundConflict
	}
	return err
}

// Archive operations

func (s *Storage) SaveArchive(ctx context.Context, archive *model.RoundArchive) error {
	data, err := json.Marshal(archive)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, archiveKey(archive.ID), data, s.cfg.ArchiveTTL).Err()
}

func (s *Storage) GetArchive(ctx context.Context, id model.RoundID) (*model.RoundArchive, error) {
	data, err := s.client.Get(ctx, archiveKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrArchiveNotFound
		}
		return nil, err
	}

	var archive model.RoundArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, err
	}
	return &archive, nil
}
