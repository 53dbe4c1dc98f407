// Package session keeps a local player state and the remote authority
// eventually consistent: local-first mutation with dirty-field tracking,
// batched diff uploads, periodic full resync with remote-wins overwrite,
// and a push channel for unsolicited server updates. Each concern runs on
// its own interval; none shares a clock phase with another.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/GENOxGAME/GENO/internal/backend"
	"github.com/GENOxGAME/GENO/internal/catalog"
	"github.com/GENOxGAME/GENO/internal/game"
	"github.com/GENOxGAME/GENO/internal/leaderboard"
	"github.com/GENOxGAME/GENO/internal/player"
	"github.com/GENOxGAME/GENO/internal/telemetry"
)

// Pusher is a live push subscription (see backend.Subscription).
type Pusher interface {
	Events() <-chan backend.PushEvent
	Err() error
	Close() error
}

// Remote is the backend surface the session needs. *backend.Client
// satisfies it.
type Remote interface {
	FetchPlayer(ctx context.Context, id string) (*player.State, error)
	PushChanges(ctx context.Context, batch backend.ChangeBatch) error
	PushSnapshot(ctx context.Context, st *player.State) error
	Ping(ctx context.Context, id string) error
	SubmitScore(ctx context.Context, e leaderboard.Entry) error
	Subscribe(ctx context.Context, id string) (Pusher, error)
}

// Intervals are the independent schedules. Zero disables a loop.
type Intervals struct {
	Tick        time.Duration
	Upload      time.Duration
	Resync      time.Duration
	Leaderboard time.Duration
	Ping        time.Duration
	Reconnect   time.Duration
}

// DefaultIntervals matches the reference behavior: 1s tick, 5s upload
// batches, 30s leaderboard submits, fixed 5s push reconnect.
func DefaultIntervals() Intervals {
	return Intervals{
		Tick:        time.Second,
		Upload:      5 * time.Second,
		Resync:      30 * time.Second,
		Leaderboard: 30 * time.Second,
		Ping:        5 * time.Minute,
		Reconnect:   5 * time.Second,
	}
}

type Options struct {
	Catalog   *catalog.Catalog
	State     *player.State
	Remote    Remote
	Local     player.Repository // optional offline fallback save
	Events    telemetry.Repository
	Clock     game.Clock
	Logger    *log.Logger
	Intervals Intervals
	Name      string // display name for the leaderboard
}

// Session owns the engine and serializes all access to its state. Actions
// apply synchronously; network calls run on their own goroutines and never
// stall the tick.
type Session struct {
	mu     sync.Mutex
	engine *game.Engine

	dirty     *dirtySet
	remote    Remote
	local     player.Repository
	events    telemetry.Repository
	clock     game.Clock
	logger    *log.Logger
	intervals Intervals
	name      string

	cancel context.CancelFunc
	wg     sync.WaitGroup

	subMu sync.Mutex
	sub   Pusher
}

func New(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = game.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Intervals == (Intervals{}) {
		opts.Intervals = DefaultIntervals()
	}

	dirty := newDirtySet()
	eng := game.New(opts.Catalog, opts.State)
	eng.Clock = opts.Clock
	eng.Dirty = dirty
	eng.Events = opts.Events

	return &Session{
		engine:    eng,
		dirty:     dirty,
		remote:    opts.Remote,
		local:     opts.Local,
		events:    opts.Events,
		clock:     opts.Clock,
		logger:    opts.Logger,
		intervals: opts.Intervals,
		name:      opts.Name,
	}
}

// Bootstrap fetches the authoritative snapshot once, before any ticking,
// so the first render never shows stale defaults. No record remotely means
// a new player; an unreachable backend degrades silently to the local
// fallback save, then to fresh defaults.
func (s *Session) Bootstrap(ctx context.Context) {
	id := s.Snapshot().ID

	remote, err := s.remote.FetchPlayer(ctx, id)
	switch {
	case err == nil:
		s.adoptRemote(remote, true)
		return
	case errors.Is(err, backend.ErrNotFound):
		// New player: create the remote record, best effort.
		if pushErr := s.remote.PushSnapshot(ctx, s.Snapshot()); pushErr != nil {
			s.logger.Printf("bootstrap: create remote record: %v", pushErr)
		}
		return
	default:
		s.logger.Printf("bootstrap: backend unavailable: %v", err)
		s.recordEvent(telemetry.EventTransportFailure, telemetry.EventMetadata{"op": "bootstrap"})
	}

	if s.local == nil {
		return
	}
	saved, ok, loadErr := s.local.Get(ctx, id)
	if loadErr != nil || !ok {
		return
	}
	s.adoptRemote(saved, true)
}

// adoptRemote replaces the local state with an authoritative snapshot,
// preserving local identity and restarting the accrual watermarks on the
// local clock.
func (s *Session) adoptRemote(remote *player.State, resetEnergyWatermark bool) {
	now := s.clock.Now()
	ms := now.UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()

	st := remote.Clone()
	st.ID = s.engine.State().ID
	st.LastActiveTime = ms
	st.LastPassiveGenTime = ms
	if resetEnergyWatermark {
		st.LastEnergyRecovery = ms
	}
	st.Normalize(now)

	s.engine.ReplaceState(st)
	s.dirty.Clear()
}

// Start launches the interval loops and the push subscription. Close stops
// them all.
func (s *Session) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.loop(ctx, s.intervals.Tick, func(context.Context) {
		s.Tick()
	})
	s.loop(ctx, s.intervals.Upload, s.uploadOnce)
	s.loop(ctx, s.intervals.Resync, s.resyncOnce)
	s.loop(ctx, s.intervals.Leaderboard, s.submitScoreOnce)
	s.loop(ctx, s.intervals.Ping, func(ctx context.Context) {
		if err := s.remote.Ping(ctx, s.Snapshot().ID); err != nil {
			s.logger.Printf("ping: %v", err)
		}
	})

	s.wg.Add(1)
	go s.pushLoop(ctx)
}

func (s *Session) loop(ctx context.Context, every time.Duration, fn func(context.Context)) {
	if every <= 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
}

// Close tears down the push subscription, stops every loop, and writes a
// final local snapshot.
func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.subMu.Lock()
	if s.sub != nil {
		_ = s.sub.Close()
	}
	s.subMu.Unlock()
	s.wg.Wait()

	if s.local != nil {
		_ = s.local.Put(context.Background(), s.Snapshot())
	}
}

// uploadOnce sends the pending dirty fields' current values. The snapshot
// of generations is taken together with the values; acknowledgement only
// clears fields unchanged since that capture.
func (s *Session) uploadOnce(ctx context.Context) {
	s.mu.Lock()
	snap := s.dirty.Snapshot()
	if snap == nil {
		s.mu.Unlock()
		return
	}
	st := s.engine.State()
	batch := backend.ChangeBatch{
		ID:        st.ID,
		Timestamp: s.clock.Now().UnixMilli(),
		Changes:   make(map[string]any, len(snap)),
	}
	for field := range snap {
		if v, ok := st.Value(field); ok {
			batch.Changes[v2key(field)] = v
		}
	}
	local := st.Clone()
	s.mu.Unlock()

	if s.local != nil {
		_ = s.local.Put(ctx, local)
	}

	if err := s.remote.PushChanges(ctx, batch); err != nil {
		s.logger.Printf("upload: %v", err)
		s.recordEvent(telemetry.EventTransportFailure, telemetry.EventMetadata{"op": "upload"})
		return // fields stay dirty; retried next interval
	}

	s.dirty.Acknowledge(snap)
	s.recordEvent(telemetry.EventSyncUploaded, telemetry.EventMetadata{"fields": len(batch.Changes)})
}

// v2key maps a state field constant to its wire key. They are identical
// today; the indirection marks the one place to change if they diverge.
func v2key(field string) string { return field }

// resyncOnce downloads the authoritative snapshot and overwrites local
// state wholesale when the core balances diverge. Remote wins; only the
// local identity and the accrual watermarks survive.
func (s *Session) resyncOnce(ctx context.Context) {
	id := s.Snapshot().ID
	remote, err := s.remote.FetchPlayer(ctx, id)
	if err != nil {
		if !errors.Is(err, backend.ErrNotFound) {
			s.logger.Printf("resync: %v", err)
			s.recordEvent(telemetry.EventTransportFailure, telemetry.EventMetadata{"op": "resync"})
		}
		return
	}

	s.mu.Lock()
	st := s.engine.State()
	diverged := remote.Geno != st.Geno || remote.Energy != st.Energy || remote.MaxEnergy != st.MaxEnergy
	s.mu.Unlock()

	if !diverged {
		return
	}
	s.adoptRemote(remote, false)
	s.recordEvent(telemetry.EventSyncReconciled, telemetry.EventMetadata{"id": id})
}

func (s *Session) submitScoreOnce(ctx context.Context) {
	st := s.Snapshot()
	entry := leaderboard.Entry{
		PlayerID:    st.ID,
		Name:        s.name,
		Geno:        st.Geno,
		StageIndex:  st.StageIndex,
		TotalClicks: st.TotalClicks,
		UpdatedAt:   s.clock.Now(),
	}
	if err := s.remote.SubmitScore(ctx, entry); err != nil {
		s.logger.Printf("leaderboard submit: %v", err)
	}
}

// pushLoop keeps the push channel alive: on any transport error it waits a
// fixed delay and reconnects with a fresh subscription.
func (s *Session) pushLoop(ctx context.Context) {
	defer s.wg.Done()
	id := s.Snapshot().ID

	for ctx.Err() == nil {
		sub, err := s.remote.Subscribe(ctx, id)
		if err != nil {
			s.logger.Printf("push: subscribe: %v", err)
			if !sleepCtx(ctx, s.intervals.Reconnect) {
				return
			}
			continue
		}

		s.subMu.Lock()
		if ctx.Err() != nil {
			// Close already ran and missed this subscription; it is ours
			// to tear down or its stream would keep the loop alive forever.
			s.subMu.Unlock()
			_ = sub.Close()
			return
		}
		s.sub = sub
		s.subMu.Unlock()

		for ev := range sub.Events() {
			s.applyPush(ev)
		}
		if err := sub.Err(); err != nil && ctx.Err() == nil {
			s.logger.Printf("push: stream ended: %v", err)
		}
		if !sleepCtx(ctx, s.intervals.Reconnect) {
			return
		}
	}
}

func (s *Session) applyPush(ev backend.PushEvent) {
	switch ev.Type {
	case PushTypeHeartbeat:
		// liveness only
	case PushTypeUpdate:
		s.mu.Lock()
		st := s.engine.State()
		applied := 0
		for field, raw := range ev.Data {
			// A field with an unacknowledged local change outranks any
			// pushed value: the push is stale relative to what the next
			// upload will send.
			if field == "id" || s.dirty.Contains(field) {
				continue
			}
			if err := st.ApplyField(field, raw); err != nil {
				s.logger.Printf("push: apply: %v", err)
				continue
			}
			applied++
		}
		st.Normalize(s.clock.Now())
		s.mu.Unlock()
		s.recordEvent(telemetry.EventPushApplied, telemetry.EventMetadata{"fields": applied})
	default:
		s.logger.Printf("push: unknown frame type %q", ev.Type)
	}
}

const (
	PushTypeUpdate    = backend.PushTypeUpdate
	PushTypeHeartbeat = backend.PushTypeHeartbeat
)

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (s *Session) recordEvent(t telemetry.EventType, meta telemetry.EventMetadata) {
	if s.events != nil {
		_ = s.events.RecordEvent(t, meta)
	}
}
