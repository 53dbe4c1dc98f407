// Package leaderboard ranks players by lifetime geno. The server owns the
// board; clients submit their own entry periodically.
package leaderboard

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Entry is one leaderboard row.
type Entry struct {
	PlayerID    string    `json:"playerId"`
	Name        string    `json:"name"`
	Geno        int64     `json:"geno"`
	StageIndex  int       `json:"stageIndex"`
	TotalClicks int64     `json:"totalClicks"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Repository stores and ranks entries.
type Repository interface {
	Submit(ctx context.Context, e Entry) error
	Top(ctx context.Context, limit int) ([]Entry, error)
	Rank(ctx context.Context, playerID string) (int, bool, error)
}

// MemoryRepo keeps the board in memory (dev/test use).
type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{entries: map[string]Entry{}}
}

func (r *MemoryRepo) Submit(ctx context.Context, e Entry) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}
	r.entries[e.PlayerID] = e
	return nil
}

func (r *MemoryRepo) Top(ctx context.Context, limit int) ([]Entry, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	return topOf(r.entries, limit), nil
}

func (r *MemoryRepo) Rank(ctx context.Context, playerID string) (int, bool, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	return rankOf(r.entries, playerID)
}

// sorted returns all entries by geno descending, ties broken by earliest
// update so a stagnant leader is not displaced by a tie.
func topOf(entries map[string]Entry, limit int) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Geno != out[j].Geno {
			return out[i].Geno > out[j].Geno
		}
		return out[i].UpdatedAt.Before(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func rankOf(entries map[string]Entry, playerID string) (int, bool, error) {
	target, ok := entries[playerID]
	if !ok {
		return 0, false, nil
	}
	rank := 1
	for id, e := range entries {
		if id == playerID {
			continue
		}
		if e.Geno > target.Geno || (e.Geno == target.Geno && e.UpdatedAt.Before(target.UpdatedAt)) {
			rank++
		}
	}
	return rank, true, nil
}
