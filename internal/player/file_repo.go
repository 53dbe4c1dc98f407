package player

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileRepo persists player states as a single JSON file under a data
// directory. The whole file is rewritten on every mutation; the record
// counts involved make that acceptable.
type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

type fileState struct {
	Players map[string]*State `json:"players"`
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path: filepath.Join(dataDir, "players.json"),
		s:    fileState{Players: map[string]*State{}},
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.s = fileState{Players: map[string]*State{}}
			return nil
		}
		return err
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Players == nil {
		loaded.Players = map[string]*State{}
	}
	now := time.Now()
	for _, s := range loaded.Players {
		s.Normalize(now)
	}
	r.s = loaded
	return nil
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

func (r *FileRepo) Get(ctx context.Context, id string) (*State, bool, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.s.Players[id]
	if !ok {
		return nil, false, nil
	}
	return s.Clone(), true, nil
}

func (r *FileRepo) Put(ctx context.Context, s *State) error {
	_ = ctx

	clone := s.Clone()
	clone.Normalize(time.Now())

	r.mu.Lock()
	defer r.mu.Unlock()

	r.s.Players[clone.ID] = clone
	return r.saveLocked()
}

func (r *FileRepo) ApplyChanges(ctx context.Context, id string, changes map[string]json.RawMessage) (*State, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.s.Players[id]
	if !ok {
		s = NewWithID(id, time.Now())
		r.s.Players[id] = s
	}
	applyErr := s.ApplyChanges(changes)
	s.Normalize(time.Now())

	if err := r.saveLocked(); err != nil {
		return nil, err
	}
	return s.Clone(), applyErr
}

func (r *FileRepo) List(ctx context.Context) ([]*State, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*State, 0, len(r.s.Players))
	for _, s := range r.s.Players {
		out = append(out, s.Clone())
	}
	return out, nil
}
