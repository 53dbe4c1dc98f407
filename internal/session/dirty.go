package session

import "sync"

// dirtySet tracks which state fields changed since the last acknowledged
// upload. Each mark bumps a per-field generation; an upload snapshots the
// generations it captured and only clears fields whose generation is still
// the captured one. A field re-dirtied while an upload is in flight stays
// dirty for the next cycle.
type dirtySet struct {
	mu  sync.Mutex
	gen map[string]uint64
	n   uint64
}

func newDirtySet() *dirtySet {
	return &dirtySet{gen: map[string]uint64{}}
}

// MarkDirty implements game.Recorder.
func (d *dirtySet) MarkDirty(fields ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, f := range fields {
		d.n++
		d.gen[f] = d.n
	}
}

// Snapshot captures the pending fields and their generations. Returns nil
// when nothing is pending.
func (d *dirtySet) Snapshot() map[string]uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.gen) == 0 {
		return nil
	}
	out := make(map[string]uint64, len(d.gen))
	for f, g := range d.gen {
		out[f] = g
	}
	return out
}

// Acknowledge clears every snapshotted field that was not re-dirtied after
// the snapshot was taken.
func (d *dirtySet) Acknowledge(snap map[string]uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for f, g := range snap {
		if d.gen[f] == g {
			delete(d.gen, f)
		}
	}
}

// Contains reports whether a field has an unacknowledged local change.
func (d *dirtySet) Contains(field string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.gen[field]
	return ok
}

// Clear drops everything pending (remote overwrite).
func (d *dirtySet) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen = map[string]uint64{}
}

func (d *dirtySet) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.gen)
}
