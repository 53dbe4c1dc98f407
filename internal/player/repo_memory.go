package player

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryRepo stores player states in memory (dev/test use).
type MemoryRepo struct {
	mu      sync.RWMutex
	players map[string]*State
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{players: map[string]*State{}}
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (*State, bool, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.players[id]
	if !ok {
		return nil, false, nil
	}
	return s.Clone(), true, nil
}

func (r *MemoryRepo) Put(ctx context.Context, s *State) error {
	_ = ctx

	clone := s.Clone()
	clone.Normalize(time.Now())

	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[clone.ID] = clone
	return nil
}

func (r *MemoryRepo) ApplyChanges(ctx context.Context, id string, changes map[string]json.RawMessage) (*State, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.players[id]
	if !ok {
		s = NewWithID(id, time.Now())
		r.players[id] = s
	}
	err := s.ApplyChanges(changes)
	s.Normalize(time.Now())
	return s.Clone(), err
}

func (r *MemoryRepo) List(ctx context.Context) ([]*State, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*State, 0, len(r.players))
	for _, s := range r.players {
		out = append(out, s.Clone())
	}
	return out, nil
}
