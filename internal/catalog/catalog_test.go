package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_BuildsAndOrdersStages(t *testing.T) {
	c := Default()

	require.Equal(t, 10, c.MaxStage())
	first, ok := c.Stage(0)
	require.True(t, ok)
	assert.Equal(t, "Cell", first.Name)
	assert.Equal(t, int64(0), first.Threshold)

	last, ok := c.Stage(10)
	require.True(t, ok)
	assert.Equal(t, "Genome God", last.Name)
	assert.Equal(t, int64(50_000_000_000), last.Threshold)

	for i := 0; i < c.MaxStage(); i++ {
		cur, _ := c.Stage(i)
		next, ok := c.NextStage(i)
		require.True(t, ok, "stage %d has a successor", i)
		assert.Greater(t, next.Threshold, cur.Threshold)
		assert.Equal(t, i+1, next.Ordinal)
	}

	_, ok = c.NextStage(c.MaxStage())
	assert.False(t, ok, "final stage has no successor")
}

func TestDefault_UpgradeLookups(t *testing.T) {
	c := Default()

	def, ok := c.Upgrade(CategoryClick, 0, "cell_membrane")
	require.True(t, ok)
	assert.Equal(t, int64(100), def.BaseCost)
	assert.False(t, def.Energy)

	def, ok = c.Upgrade(CategoryClick, 0, "cell_energy")
	require.True(t, ok)
	assert.True(t, def.Energy)

	_, ok = c.Upgrade(CategoryPassive, 0, "cell_membrane")
	assert.False(t, ok, "click upgrade must not resolve under passive")

	_, ok = c.Upgrade(CategoryClick, 3, "cell_membrane")
	assert.False(t, ok, "upgrade is bound to its stage")
}

func TestDefault_TaskAndBoosterLookups(t *testing.T) {
	c := Default()

	task, ok := c.Task("reach_amoeba")
	require.True(t, ok)
	assert.True(t, task.AutoComplete)
	assert.Equal(t, int64(2_000), task.Reward)
	assert.Equal(t, PredStageAtLeast, task.Requires.Kind)

	_, ok = c.Task("no_such_task")
	assert.False(t, ok)

	b, ok := c.Booster("energy_refill")
	require.True(t, ok)
	assert.Zero(t, b.DurationMS, "refill is instant")
	assert.Equal(t, CurrencyStars, b.PriceIn)

	assert.Len(t, c.Boosters(), 10)
}

func TestDefault_LateBoardRanks(t *testing.T) {
	c := Default()

	speedrun, ok := c.Task("evolution_speedrun")
	require.True(t, ok)
	assert.Equal(t, 27, speedrun.UnlockRank)
	assert.Equal(t, int64(30_000), speedrun.Reward)
	assert.Equal(t, PredStageAtLeast, speedrun.Requires.Kind)
	assert.Equal(t, int64(7), speedrun.Requires.Threshold)

	perfect, ok := c.Task("perfect_efficiency")
	require.True(t, ok)
	assert.Equal(t, 28, perfect.UnlockRank)
}

func TestNew_RejectsBadData(t *testing.T) {
	_, err := New(nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoStages)

	unordered := []Stage{
		{Name: "A", Threshold: 100},
		{Name: "B", Threshold: 100},
	}
	_, err = New(unordered, nil, nil, nil)
	assert.ErrorIs(t, err, ErrUnorderedStages)

	stages := []Stage{{Name: "A", Threshold: 0}, {Name: "B", Threshold: 10}}
	dupTasks := []TaskDef{
		{ID: "t", Title: "one", Requires: Predicate{Kind: PredClicksAtLeast, Threshold: 1}},
		{ID: "t", Title: "two", Requires: Predicate{Kind: PredClicksAtLeast, Threshold: 2}},
	}
	_, err = New(stages, nil, dupTasks, nil)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestPredicate_Validate(t *testing.T) {
	assert.NoError(t, Predicate{Kind: PredClicksAtLeast, Threshold: 1}.Validate())
	assert.Error(t, Predicate{Kind: "nonsense"}.Validate())

	compound := Predicate{Kind: PredAllOf, AllOf: []Predicate{
		{Kind: PredStageAtLeast, Threshold: 3},
		{Kind: PredReferralsAtLeast, Threshold: 1},
	}}
	assert.NoError(t, compound.Validate())

	empty := Predicate{Kind: PredAllOf}
	assert.Error(t, empty.Validate(), "all_of needs at least one member")
}
