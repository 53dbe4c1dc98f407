package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GENOxGAME/GENO/internal/catalog"
	"github.com/GENOxGAME/GENO/internal/player"
)

func newEngineForTest(t *testing.T) (*Engine, *FakeClock) {
	t.Helper()
	clock := NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	st := player.NewWithID("p1", clock.Now())
	e := New(catalog.Default(), st)
	e.Clock = clock
	return e, clock
}

func TestClick_EarnsPowerAndBurnsEnergy(t *testing.T) {
	e, clock := newEngineForTest(t)

	earned, err := e.Click()
	require.NoError(t, err)
	assert.Equal(t, int64(1), earned)

	s := e.State()
	assert.Equal(t, int64(1), s.Geno)
	assert.Equal(t, int64(99), s.Energy)
	assert.Equal(t, int64(1), s.TotalClicks)
	assert.Equal(t, int64(1), s.TotalGenoEarned)
	assert.Equal(t, clock.Now().UnixMilli(), s.LastActiveTime)
}

func TestClick_InsufficientEnergyLeavesStateUntouched(t *testing.T) {
	e, _ := newEngineForTest(t)
	e.State().Energy = 0

	before := e.State().Clone()
	_, err := e.Click()
	assert.ErrorIs(t, err, ErrInsufficientEnergy)
	assert.Equal(t, before, e.State())
}

func TestClick_CrossingThresholdEvolvesOneStage(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()
	s.Geno = 999
	s.TotalGenoEarned = 999

	_, err := e.Click()
	require.NoError(t, err)

	// 1000 geno crosses into Amoeba, which auto-completes reach_amoeba
	// and credits its 2000 reward on top.
	assert.Equal(t, 1, s.StageIndex)
	assert.Contains(t, s.CompletedTasks, "reach_amoeba")
	assert.Equal(t, int64(3_000), s.Geno)
	assert.Equal(t, int64(3_000), s.TotalGenoEarned)
}

func TestEvaluateEvolution_OneStagePerCall(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()
	// Enough for Jellyfish (5000) outright.
	s.Geno = 6_000

	assert.True(t, e.EvaluateEvolution())
	assert.Equal(t, 1, s.StageIndex)

	// reach_amoeba's reward (2000) landed; the next evaluation picks up
	// the remaining advance.
	assert.True(t, e.EvaluateEvolution())
	assert.Equal(t, 2, s.StageIndex)
}

func TestAutoCompleteTasks_NeverCreditsTwice(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()
	s.Geno = 1_500

	require.True(t, e.EvaluateEvolution())
	require.Contains(t, s.CompletedTasks, "reach_amoeba")
	after := s.Geno

	credited := e.AutoCompleteTasks()
	assert.Empty(t, credited)
	assert.Equal(t, after, s.Geno)
}

func TestBuyUpgrade_CostDoublesWithLevel(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()
	s.Geno = 1_000

	level, cost, err := e.BuyUpgrade(catalog.CategoryClick, 0, "cell_membrane")
	require.NoError(t, err)
	assert.Equal(t, 1, level)
	assert.Equal(t, int64(100), cost)
	assert.Equal(t, int64(900), s.Geno)

	level, cost, err = e.BuyUpgrade(catalog.CategoryClick, 0, "cell_membrane")
	require.NoError(t, err)
	assert.Equal(t, 2, level)
	assert.Equal(t, int64(200), cost)
}

func TestBuyUpgrade_Rejections(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()
	s.Geno = 50

	_, _, err := e.BuyUpgrade(catalog.CategoryClick, 0, "cell_membrane")
	assert.ErrorIs(t, err, ErrInsufficientGeno)
	assert.Equal(t, int64(50), s.Geno)
	assert.Zero(t, s.UpgradeLevel(player.CategoryClick, 0, "cell_membrane"))

	_, _, err = e.BuyUpgrade(catalog.CategoryClick, 0, "no_such_upgrade")
	assert.ErrorIs(t, err, ErrUnknownUpgrade)
}

func TestBuyUpgrade_EnergyTypeRaisesCapAndTopsUp(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()
	s.Geno = 500
	s.Energy = 80

	// cell_energy: effect 5, so +5 max and +5 current.
	_, _, err := e.BuyUpgrade(catalog.CategoryClick, 0, "cell_energy")
	require.NoError(t, err)
	assert.Equal(t, int64(105), s.MaxEnergy)
	assert.Equal(t, int64(85), s.Energy)
}

func TestBuyUpgrade_EnergyTopUpIsCappedAtNewMax(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()
	s.Geno = 500
	s.Energy = 103 // above old max after a capacity change elsewhere
	s.MaxEnergy = 100

	_, _, err := e.BuyUpgrade(catalog.CategoryClick, 0, "cell_energy")
	require.NoError(t, err)
	assert.Equal(t, int64(105), s.MaxEnergy)
	assert.Equal(t, int64(105), s.Energy)
}

func TestBuyBooster_TimedRecordsAbsoluteExpiry(t *testing.T) {
	e, clock := newEngineForTest(t)
	s := e.State()
	s.TelegramStars = 20

	require.NoError(t, e.BuyBooster("energy_boost_12h"))
	assert.Equal(t, int64(10), s.TelegramStars)
	assert.Equal(t, int64(1), s.BoostersActivated)

	wantExpiry := clock.Now().UnixMilli() + 12*60*60*1000
	assert.Equal(t, wantExpiry, s.ActiveBoosters["energy_boost_12h"])

	assert.True(t, s.HasActiveBooster(clock.Now()))
	clock.Advance(13 * time.Hour)
	assert.False(t, s.HasActiveBooster(clock.Now()), "expired entries stay in the map but no longer count")
}

func TestBuyBooster_ReactivationOverwritesExpiry(t *testing.T) {
	e, clock := newEngineForTest(t)
	s := e.State()
	s.TelegramStars = 40

	require.NoError(t, e.BuyBooster("energy_boost_12h"))
	clock.Advance(2 * time.Hour)
	require.NoError(t, e.BuyBooster("energy_boost_12h"))

	wantExpiry := clock.Now().UnixMilli() + 12*60*60*1000
	assert.Equal(t, wantExpiry, s.ActiveBoosters["energy_boost_12h"], "durations do not stack")
}

func TestBuyBooster_InstantRefillRestoresEnergy(t *testing.T) {
	e, clock := newEngineForTest(t)
	s := e.State()
	s.TelegramStars = 5
	s.Energy = 7
	clock.Advance(10 * time.Minute)

	require.NoError(t, e.BuyBooster("energy_refill"))
	assert.Equal(t, s.MaxEnergy, s.Energy)
	assert.Equal(t, clock.Now().UnixMilli(), s.LastEnergyRecovery)
	assert.Empty(t, s.ActiveBoosters)
}

func TestBuyBooster_InsufficientStars(t *testing.T) {
	e, _ := newEngineForTest(t)
	err := e.BuyBooster("energy_boost_12h")
	assert.ErrorIs(t, err, ErrInsufficientStars)
	assert.Zero(t, e.State().BoostersActivated)
}

func TestCompleteTask_ManualFlow(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()

	// first_click needs 100 clicks.
	_, err := e.CompleteTask("first_click")
	assert.ErrorIs(t, err, ErrTaskNotReady)

	s.TotalClicks = 100
	reward, err := e.CompleteTask("first_click")
	require.NoError(t, err)
	assert.Equal(t, int64(100), reward)
	assert.Contains(t, s.CompletedTasks, "first_click")

	// Completing again is a silent no-op.
	reward, err = e.CompleteTask("first_click")
	require.NoError(t, err)
	assert.Zero(t, reward)

	_, err = e.CompleteTask("no_such_task")
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestCollectPassive(t *testing.T) {
	e, clock := newEngineForTest(t)
	s := e.State()
	s.PassiveAccumulated = 250
	clock.Advance(time.Hour)

	got := e.CollectPassive()
	assert.Equal(t, int64(250), got)
	assert.Equal(t, int64(250), s.Geno)
	assert.Zero(t, s.PassiveAccumulated)
	assert.Equal(t, clock.Now().UnixMilli(), s.LastPassiveCollection)

	// Nothing pending: only the collection window restarts.
	clock.Advance(time.Minute)
	assert.Zero(t, e.CollectPassive())
	assert.Equal(t, clock.Now().UnixMilli(), s.LastPassiveCollection)
}

func TestApplyReferral_SetOnce(t *testing.T) {
	e, _ := newEngineForTest(t)
	s := e.State()

	assert.False(t, e.ApplyReferral(""), "empty referrer")
	assert.False(t, e.ApplyReferral("p1"), "self referral")

	assert.True(t, e.ApplyReferral("friend"))
	assert.Equal(t, "friend", s.ReferredBy)
	assert.Equal(t, int64(1_000), s.Geno)

	assert.False(t, e.ApplyReferral("other"), "already linked")
	assert.Equal(t, "friend", s.ReferredBy)
	assert.Equal(t, int64(1_000), s.Geno)
}

func TestAddStars(t *testing.T) {
	e, _ := newEngineForTest(t)
	e.AddStars(25)
	e.AddStars(0)
	e.AddStars(-5)
	assert.Equal(t, int64(25), e.State().TelegramStars)
}
