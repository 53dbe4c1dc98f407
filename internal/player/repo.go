package player

import (
	"context"
	"encoding/json"
)

// Repository is the authoritative player store used by the server and, in
// file form, as the client's offline fallback save.
type Repository interface {
	// Get returns the stored state for an identity, ok=false if no record
	// exists yet.
	Get(ctx context.Context, id string) (*State, bool, error)
	// Put stores a full snapshot, replacing any existing record.
	Put(ctx context.Context, s *State) error
	// ApplyChanges applies a partial field batch to an existing record,
	// creating a fresh record first if none exists. Returns the updated
	// state.
	ApplyChanges(ctx context.Context, id string, changes map[string]json.RawMessage) (*State, error)
	// List returns every stored state.
	List(ctx context.Context) ([]*State, error)
}
