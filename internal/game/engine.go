// Package game owns the mutable player record and applies every
// state-changing action to it: clicks, purchases, task completion, stage
// evolution, and the periodic idle tick. Actions validate before mutating;
// a rejected action leaves the state exactly as it was.
package game

import (
	"github.com/GENOxGAME/GENO/internal/catalog"
	"github.com/GENOxGAME/GENO/internal/economy"
	"github.com/GENOxGAME/GENO/internal/player"
	"github.com/GENOxGAME/GENO/internal/telemetry"
)

// Recorder receives the names of the top-level state fields an action
// touched. The sync coordinator uses it for dirty tracking.
type Recorder interface {
	MarkDirty(fields ...string)
}

type nopRecorder struct{}

func (nopRecorder) MarkDirty(...string) {}

// Engine applies actions to a single player state. It is not
// self-synchronizing: one logical thread of control at a time.
type Engine struct {
	Catalog *catalog.Catalog
	Clock   Clock
	Dirty   Recorder
	Events  telemetry.Repository

	state *player.State

	// Fractional energy carried between ticks so the regeneration rate is
	// linear in elapsed time even when per-tick gain floors to zero.
	energyCarry float64
}

// New wires an engine around an existing state. Clock, Dirty, and Events
// default to a real clock, a no-op recorder, and nil (telemetry off).
func New(cat *catalog.Catalog, st *player.State) *Engine {
	return &Engine{
		Catalog: cat,
		Clock:   RealClock{},
		Dirty:   nopRecorder{},
		state:   st,
	}
}

// State exposes the owned record, for reads and serialization.
func (e *Engine) State() *player.State { return e.state }

// ReplaceState swaps in a new record (reconciliation with the remote
// authority). Energy carry is dropped with the old record.
func (e *Engine) ReplaceState(st *player.State) {
	e.state = st
	e.energyCarry = 0
}

func (e *Engine) record(t telemetry.EventType, meta telemetry.EventMetadata) {
	if e.Events != nil {
		_ = e.Events.RecordEvent(t, meta)
	}
}

// ClickPower derives the current per-click yield.
func (e *Engine) ClickPower() int64 {
	return economy.ClickPower(e.Catalog, e.state)
}

// PassivePerMinute derives the current passive income rate.
func (e *Engine) PassivePerMinute() int64 {
	return economy.PassivePerMinute(e.Catalog, e.state)
}

// Click performs one tap: earns click power geno, burns the same amount of
// energy, then re-evaluates evolution. Returns the power earned.
func (e *Engine) Click() (int64, error) {
	s := e.state
	power := e.ClickPower()
	if s.Energy < power {
		return 0, ErrInsufficientEnergy
	}

	now := e.Clock.Now().UnixMilli()
	s.Geno += power
	s.Energy -= power
	s.TotalClicks++
	s.TotalGenoEarned += power
	s.LastActiveTime = now

	e.Dirty.MarkDirty(player.FieldGeno, player.FieldEnergy,
		player.FieldTotalClicks, player.FieldTotalGenoEarned, player.FieldLastActiveTime)
	e.record(telemetry.EventClick, telemetry.EventMetadata{"power": power})

	e.EvaluateEvolution()
	return power, nil
}

// BuyUpgrade purchases the next level of an upgrade. Energy-type upgrades
// raise max energy and top up current energy by the same amount, capped at
// the new max. Returns the new level and the price paid.
func (e *Engine) BuyUpgrade(category catalog.UpgradeCategory, stage int, id string) (int, int64, error) {
	s := e.state
	def, ok := e.Catalog.Upgrade(category, stage, id)
	if !ok {
		return 0, 0, ErrUnknownUpgrade
	}

	level := s.UpgradeLevel(string(category), stage, id)
	cost := economy.UpgradeCost(def, level)
	if s.Geno < cost {
		return 0, 0, ErrInsufficientGeno
	}

	s.Geno -= cost
	s.SetUpgradeLevel(string(category), stage, id, level+1)
	e.Dirty.MarkDirty(player.FieldGeno, player.FieldUpgrades)

	if def.Energy {
		delta := int64(def.Effect)
		s.MaxEnergy += delta
		s.Energy += delta
		if s.Energy > s.MaxEnergy {
			s.Energy = s.MaxEnergy
		}
		e.Dirty.MarkDirty(player.FieldMaxEnergy, player.FieldEnergy)
	}

	e.record(telemetry.EventUpgradePurchased, telemetry.EventMetadata{
		"upgrade": id, "category": string(category), "stage": stage, "level": level + 1, "cost": cost,
	})
	return level + 1, cost, nil
}

// BuyBooster debits the booster's price and either applies its instant
// effect or records an absolute expiry. Re-activating a timed booster
// overwrites the previous expiry; durations do not stack.
func (e *Engine) BuyBooster(id string) error {
	s := e.state
	def, ok := e.Catalog.Booster(id)
	if !ok {
		return ErrUnknownBooster
	}

	switch def.PriceIn {
	case catalog.CurrencyStars:
		if s.TelegramStars < def.Price {
			return ErrInsufficientStars
		}
	default:
		if s.Geno < def.Price {
			return ErrInsufficientGeno
		}
	}

	now := e.Clock.Now().UnixMilli()
	switch def.PriceIn {
	case catalog.CurrencyStars:
		s.TelegramStars -= def.Price
		e.Dirty.MarkDirty(player.FieldTelegramStars)
	default:
		s.Geno -= def.Price
		e.Dirty.MarkDirty(player.FieldGeno)
	}

	if def.DurationMS == 0 {
		// The only instant booster defined is the full energy refill,
		// which also restarts the recovery window.
		s.Energy = s.MaxEnergy
		s.LastEnergyRecovery = now
		e.energyCarry = 0
		e.Dirty.MarkDirty(player.FieldEnergy, player.FieldLastEnergyRecovery)
	} else {
		if s.ActiveBoosters == nil {
			s.ActiveBoosters = map[string]int64{}
		}
		s.ActiveBoosters[id] = now + def.DurationMS
		e.Dirty.MarkDirty(player.FieldActiveBoosters)
	}

	s.BoostersActivated++
	e.Dirty.MarkDirty(player.FieldBoostersActivated)
	e.record(telemetry.EventBoosterActivated, telemetry.EventMetadata{"booster": id})
	return nil
}

// CompleteTask credits a task's reward. Already-completed tasks are a
// silent no-op; tasks whose requirement does not hold are rejected.
func (e *Engine) CompleteTask(id string) (int64, error) {
	s := e.state
	def, ok := e.Catalog.Task(id)
	if !ok {
		return 0, ErrUnknownTask
	}
	if s.HasCompletedTask(id) {
		return 0, nil
	}
	if !e.PredicateHolds(def.Requires) {
		return 0, ErrTaskNotReady
	}

	e.creditTask(def)
	return def.Reward, nil
}

func (e *Engine) creditTask(def catalog.TaskDef) {
	s := e.state
	s.Geno += def.Reward
	s.TotalGenoEarned += def.Reward
	s.CompletedTasks = append(s.CompletedTasks, def.ID)

	e.Dirty.MarkDirty(player.FieldGeno, player.FieldTotalGenoEarned, player.FieldCompletedTasks)
	e.record(telemetry.EventTaskCompleted, telemetry.EventMetadata{"task": def.ID, "reward": def.Reward})
}

// EvaluateEvolution advances at most one stage per call, even when the
// balance overshoots several thresholds; the next tick or action picks up
// any remaining advance. A stage arrival auto-completes stage tasks.
func (e *Engine) EvaluateEvolution() bool {
	s := e.state
	next, ok := e.Catalog.NextStage(s.StageIndex)
	if !ok || s.Geno < next.Threshold {
		return false
	}

	s.StageIndex = next.Ordinal
	e.Dirty.MarkDirty(player.FieldStageIndex)
	e.record(telemetry.EventStageEvolved, telemetry.EventMetadata{"stage": next.Ordinal, "name": next.Name})

	e.AutoCompleteTasks()
	return true
}

// AutoCompleteTasks credits every auto-complete task whose requirement has
// become true. Returns the ids credited, in catalog order.
func (e *Engine) AutoCompleteTasks() []string {
	var credited []string
	for _, def := range e.Catalog.Tasks() {
		if !def.AutoComplete || e.state.HasCompletedTask(def.ID) {
			continue
		}
		if e.PredicateHolds(def.Requires) {
			e.creditTask(def)
			credited = append(credited, def.ID)
		}
	}
	return credited
}

// CollectPassive merges the pending passive pool into the balance and
// restarts the forfeiture window.
func (e *Engine) CollectPassive() int64 {
	s := e.state
	amount := s.PassiveAccumulated
	now := e.Clock.Now().UnixMilli()

	if amount > 0 {
		s.Geno += amount
		s.TotalGenoEarned += amount
		s.PassiveAccumulated = 0
		e.Dirty.MarkDirty(player.FieldGeno, player.FieldTotalGenoEarned, player.FieldPassiveAccumulated)
	}
	s.LastPassiveCollection = now
	e.Dirty.MarkDirty(player.FieldLastPassiveCollection)

	if amount > 0 {
		e.record(telemetry.EventPassiveCollected, telemetry.EventMetadata{"amount": amount})
		e.EvaluateEvolution()
	}
	return amount
}

// ApplyReferral records the referrer and credits the invite bonus. The
// link is set at most once and never to the player's own id; a repeat
// apply is a no-op.
func (e *Engine) ApplyReferral(refID string) bool {
	s := e.state
	if refID == "" || refID == s.ID || s.ReferredBy != "" {
		return false
	}

	s.ReferredBy = refID
	s.Geno += referralBonus
	e.Dirty.MarkDirty(player.FieldReferredBy, player.FieldGeno)
	e.record(telemetry.EventReferralApplied, telemetry.EventMetadata{"referrer": refID})
	return true
}

const referralBonus = 1000

// AddStars credits purchased premium currency.
func (e *Engine) AddStars(amount int64) {
	if amount <= 0 {
		return
	}
	e.state.TelegramStars += amount
	e.Dirty.MarkDirty(player.FieldTelegramStars)
}
