package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/okian/goalkeep/internal/domain/model"
)

// snapshot is an immutable view of the records. Readers load it without
// locking; Replace publishes a new one.
type snapshot struct {
	goalkeepers []model.Goalkeeper
	opponents   []model.Opponent
	gkByID      map[string]int
	opByID      map[string]int
}

// MemoryStore is an in-memory Repository.
type MemoryStore struct {
	snap atomic.Pointer[snapshot]
}

// NewMemoryStore creates a store holding the given records.
func NewMemoryStore(gks []model.Goalkeeper, ops []model.Opponent) (*MemoryStore, error) {
	s := &MemoryStore{}
	if err := s.Replace(gks, ops); err != nil {
		return nil, err
	}
	return s, nil
}

// Replace swaps the full record set. Records with empty or duplicate ids are
// rejected and the previous set is kept.
func (s *MemoryStore) Replace(gks []model.Goalkeeper, ops []model.Opponent) error {
	next := &snapshot{
		goalkeepers: slices.Clone(gks),
		opponents:   slices.Clone(ops),
		gkByID:      make(map[string]int, len(gks)),
		opByID:      make(map[string]int, len(ops)),
	}
	for i, g := range next.goalkeepers {
		if g.ID == "" {
			return fmt.Errorf("%w: goalkeeper at %d has no id", ErrInvalidID, i)
		}
		if _, dup := next.gkByID[g.ID]; dup {
			return fmt.Errorf("%w: duplicate goalkeeper %q", ErrInvalidID, g.ID)
		}
		next.gkByID[g.ID] = i
	}
	slices.SortStableFunc(next.opponents, func(a, b model.Opponent) int {
		return cmp.Compare(a.Ranking, b.Ranking)
	})
	for i, o := range next.opponents {
		if o.ID == "" {
			return fmt.Errorf("%w: opponent at %d has no id", ErrInvalidID, i)
		}
		if _, dup := next.opByID[o.ID]; dup {
			return fmt.Errorf("%w: duplicate opponent %q", ErrInvalidID, o.ID)
		}
		next.opByID[o.ID] = i
	}
	s.snap.Store(next)
	return nil
}

func (s *MemoryStore) Goalkeeper(_ context.Context, id string) (model.Goalkeeper, error) {
	snap := s.snap.Load()
	i, ok := snap.gkByID[id]
	if !ok {
		return model.Goalkeeper{}, fmt.Errorf("goalkeeper %q: %w", id, ErrNotFound)
	}
	return snap.goalkeepers[i], nil
}

func (s *MemoryStore) Goalkeepers(_ context.Context) ([]model.Goalkeeper, error) {
	return slices.Clone(s.snap.Load().goalkeepers), nil
}

func (s *MemoryStore) Opponent(_ context.Context, id string) (model.Opponent, error) {
	snap := s.snap.Load()
	i, ok := snap.opByID[id]
	if !ok {
		return model.Opponent{}, fmt.Errorf("opponent %q: %w", id, ErrNotFound)
	}
	return snap.opponents[i], nil
}

func (s *MemoryStore) Opponents(_ context.Context) ([]model.Opponent, error) {
	return slices.Clone(s.snap.Load().opponents), nil
}
