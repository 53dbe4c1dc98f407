package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GENOxGAME/GENO/internal/catalog"
	"github.com/GENOxGAME/GENO/internal/player"
)

func TestPredicateHolds_SimpleKinds(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()
	s.TotalClicks = 99
	s.TotalGenoEarned = 10_000
	s.Referrals = []string{"a", "b"}
	s.BoostersActivated = 3
	s.PassiveAccumulated = 1_500

	holds := func(kind catalog.PredicateKind, n int64) bool {
		return e.PredicateHolds(catalog.Predicate{Kind: kind, Threshold: n})
	}

	assert.False(t, holds(catalog.PredClicksAtLeast, 100))
	assert.True(t, holds(catalog.PredClicksAtLeast, 99))
	assert.True(t, holds(catalog.PredEarnedAtLeast, 10_000))
	assert.True(t, holds(catalog.PredMaxEnergyAtLeast, 100))
	assert.False(t, holds(catalog.PredMaxEnergyAtLeast, 101))
	assert.True(t, holds(catalog.PredReferralsAtLeast, 2))
	assert.False(t, holds(catalog.PredReferralsAtLeast, 3))
	assert.True(t, holds(catalog.PredBoostersActivatedAtLeast, 3))
	assert.True(t, holds(catalog.PredPassivePoolAtLeast, 1_000))
	assert.True(t, holds(catalog.PredStageAtLeast, 0))
	assert.False(t, holds(catalog.PredStageAtLeast, 1))
	assert.True(t, holds(catalog.PredClickPowerAtLeast, 1))
}

func TestPredicateHolds_CountsOnlyEnergyUpgradesAtReachableStages(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()

	s.SetUpgradeLevel(player.CategoryClick, 0, "cell_energy", 1)
	s.SetUpgradeLevel(player.CategoryClick, 1, "amoeba_energy", 1)
	// Non-energy ownership never counts toward the energy predicate.
	s.SetUpgradeLevel(player.CategoryClick, 0, "cell_membrane", 5)

	one := catalog.Predicate{Kind: catalog.PredEnergyUpgradesAtLeast, Threshold: 1}
	two := catalog.Predicate{Kind: catalog.PredEnergyUpgradesAtLeast, Threshold: 2}

	assert.True(t, e.PredicateHolds(one))
	assert.False(t, e.PredicateHolds(two), "stage 1 upgrade is out of reach at stage 0")

	s.StageIndex = 1
	assert.True(t, e.PredicateHolds(two))
}

func TestPredicateHolds_AllOf(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()
	s.TotalClicks = 500

	p := catalog.Predicate{Kind: catalog.PredAllOf, AllOf: []catalog.Predicate{
		{Kind: catalog.PredClicksAtLeast, Threshold: 100},
		{Kind: catalog.PredStageAtLeast, Threshold: 1},
	}}
	assert.False(t, e.PredicateHolds(p))

	s.StageIndex = 1
	assert.True(t, e.PredicateHolds(p))
}

func TestVisibleTasks_RankGatedByCompletedCount(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()

	visible := func() map[string]TaskStatus {
		out := map[string]TaskStatus{}
		for _, ts := range e.VisibleTasks() {
			out[ts.Def.ID] = ts
		}
		return out
	}

	v := visible()
	assert.Contains(t, v, "reach_amoeba")
	assert.Contains(t, v, "first_click")
	assert.NotContains(t, v, "energy_master", "rank 1 task hidden before any completion")

	s.CompletedTasks = []string{"first_click"}
	v = visible()
	assert.Contains(t, v, "energy_master")
	assert.True(t, v["first_click"].Completed)
	assert.False(t, v["first_click"].Ready, "completed tasks are never ready")

	s.TotalClicks = 100
	s.CompletedTasks = nil
	v = visible()
	assert.True(t, v["first_click"].Ready)
}
