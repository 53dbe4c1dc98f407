package game

import (
	"github.com/GENOxGAME/GENO/internal/catalog"
	"github.com/GENOxGAME/GENO/internal/player"
)

// PredicateHolds interprets a task predicate against the current state.
func (e *Engine) PredicateHolds(p catalog.Predicate) bool {
	s := e.state
	switch p.Kind {
	case catalog.PredStageAtLeast:
		return int64(s.StageIndex) >= p.Threshold
	case catalog.PredClicksAtLeast:
		return s.TotalClicks >= p.Threshold
	case catalog.PredEarnedAtLeast:
		return s.TotalGenoEarned >= p.Threshold
	case catalog.PredMaxEnergyAtLeast:
		return s.MaxEnergy >= p.Threshold
	case catalog.PredUpgradesOwnedAtLeast:
		return int64(s.OwnedUpgrades()) >= p.Threshold
	case catalog.PredEnergyUpgradesAtLeast:
		return int64(e.ownedEnergyUpgrades()) >= p.Threshold
	case catalog.PredPassivePoolAtLeast:
		return s.PassiveAccumulated >= p.Threshold
	case catalog.PredTasksCompletedAtLeast:
		return int64(len(s.CompletedTasks)) >= p.Threshold
	case catalog.PredReferralsAtLeast:
		return int64(len(s.Referrals)) >= p.Threshold
	case catalog.PredBoostersActivatedAtLeast:
		return s.BoostersActivated >= p.Threshold
	case catalog.PredClickPowerAtLeast:
		return e.ClickPower() >= p.Threshold
	case catalog.PredAllOf:
		for _, sub := range p.AllOf {
			if !e.PredicateHolds(sub) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (e *Engine) ownedEnergyUpgrades() int {
	n := 0
	for stage := 0; stage <= e.state.StageIndex; stage++ {
		su, ok := e.Catalog.StageUpgrades(stage)
		if !ok {
			continue
		}
		for _, u := range su.Click {
			if u.Energy && e.state.UpgradeLevel(player.CategoryClick, stage, u.ID) > 0 {
				n++
			}
		}
	}
	return n
}

// TaskStatus is what the presentation layer needs to render one task row.
type TaskStatus struct {
	Def       catalog.TaskDef
	Completed bool
	Ready     bool
}

// VisibleTasks lists tasks whose unlock rank the player has reached, with
// completion and readiness flags. Rank is gated by completed-task count,
// not by stage.
func (e *Engine) VisibleTasks() []TaskStatus {
	rank := len(e.state.CompletedTasks)
	var out []TaskStatus
	for _, def := range e.Catalog.Tasks() {
		if def.UnlockRank > rank {
			continue
		}
		done := e.state.HasCompletedTask(def.ID)
		out = append(out, TaskStatus{
			Def:       def,
			Completed: done,
			Ready:     !done && e.PredicateHolds(def.Requires),
		})
	}
	return out
}
