package leaderboard

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileRepo persists the board as one JSON file, rewritten on every submit.
type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

type fileState struct {
	Entries map[string]Entry `json:"entries"`
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path: filepath.Join(dataDir, "leaderboard.json"),
		s:    fileState{Entries: map[string]Entry{}},
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
			return nil
		}
		return err
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Entries == nil {
		loaded.Entries = map[string]Entry{}
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

func (r *FileRepo) Submit(ctx context.Context, e Entry) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}
	r.s.Entries[e.PlayerID] = e
	return r.saveLocked()
}

func (r *FileRepo) Top(ctx context.Context, limit int) ([]Entry, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	return topOf(r.s.Entries, limit), nil
}

func (r *FileRepo) Rank(ctx context.Context, playerID string) (int, bool, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	return rankOf(r.s.Entries, playerID)
}
