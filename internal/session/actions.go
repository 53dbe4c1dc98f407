package session

import (
	"github.com/GENOxGAME/GENO/internal/catalog"
	"github.com/GENOxGAME/GENO/internal/game"
	"github.com/GENOxGAME/GENO/internal/player"
)

// Action and view passthroughs. Each serializes against the session's own
// loops, so callers never race the tick or a sync callback.

func (s *Session) Click() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Click()
}

func (s *Session) BuyUpgrade(category catalog.UpgradeCategory, stage int, id string) (int, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.BuyUpgrade(category, stage, id)
}

func (s *Session) BuyBooster(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.BuyBooster(id)
}

func (s *Session) CompleteTask(id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CompleteTask(id)
}

func (s *Session) CollectPassive() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CollectPassive()
}

func (s *Session) ApplyReferral(refID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ApplyReferral(refID)
}

func (s *Session) AddStars(amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.AddStars(amount)
}

// Tick runs one idle-processing pass on the session clock.
func (s *Session) Tick() game.TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Tick(s.clock.Now())
}

// Snapshot returns a deep copy of the current state for reads and
// serialization.
func (s *Session) Snapshot() *player.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State().Clone()
}

func (s *Session) ClickPower() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ClickPower()
}

func (s *Session) PassivePerMinute() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.PassivePerMinute()
}

func (s *Session) VisibleTasks() []game.TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.VisibleTasks()
}

// PendingUploads reports how many fields await the next upload cycle.
func (s *Session) PendingUploads() int {
	return s.dirty.Len()
}
