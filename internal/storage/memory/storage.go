package memory

import (
	"context"
	"sync"

	"github.com/aborovsky/splashsoftware-fullstack-44/internal/model"
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// A single mutex guards all maps, which makes ApplyRoundChange
// trivially atomic.
type Storage struct {
	mu sync.RWMutex

	players  map[model.PlayerID]*model.Player
	rounds   map[model.RoundID]*model.Round
	archives map[model.RoundID]*model.RoundArchive
	sequence int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:  make(map[model.PlayerID]*model.Player),
		rounds:   make(map[model.RoundID]*model.Round),
		archives: make(map[model.RoundID]*model.RoundArchive),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = clonePlayer(player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return clonePlayer(player), nil
}

// Round operations

func (s *Storage) GetRound(ctx context.Context, id model.RoundID) (*model.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	round, ok := s.rounds[id]
	if !ok {
		return nil, model.ErrRoundNotFound
	}
	return cloneRound(round), nil
}

func (s *Storage) DeleteRound(ctx context.Context, id model.RoundID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rounds, id)
	return nil
}

func (s *Storage) NextRoundSequence(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return s.sequence, nil
}

func (s *Storage) ApplyRoundChange(ctx context.Context, round *model.Round, players []*model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var storedVersion int64
	if stored, ok := s.rounds[round.ID]; ok {
		storedVersion = stored.Version
	}
	if round.Version != storedVersion+1 {
		return model.ErrRoundConflict
	}

	s.rounds[round.ID] = cloneRound(round)
	for _, p := range players {
		s.players[p.ID] = clonePlayer(p)
	}
	return nil
}

// Archive operations

func (s *Storage) SaveArchive(ctx context.Context, archive *model.RoundArchive) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archives[archive.ID] = archive
	return nil
}

func (s *Storage) GetArchive(ctx context.Context, id model.RoundID) (*model.RoundArchive, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	archive, ok := s.archives[id]
	if !ok {
		return nil, model.ErrArchiveNotFound
	}
	return archive, nil
}

// Clones isolate callers from the stored records so an uncommitted
// in-flight mutation can never become visible through a Get.

func clonePlayer(p *model.Player) *model.Player {
	cp := *p
	if p.CurrentRound != nil {
		r := *p.CurrentRound
		cp.CurrentRound = &r
	}
	return &cp
}

func cloneRound(r *model.Round) *model.Round {
	cr := *r
	cr.Participants = make([]model.PlayerID, len(r.Participants))
	copy(cr.Participants, r.Participants)
	cr.Guesses = make(map[model.PlayerID]model.Number, len(r.Guesses))
	for id, n := range r.Guesses {
		cr.Guesses[id] = n
	}
	return &cr
}
