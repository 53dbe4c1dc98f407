package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GENOxGAME/GENO/internal/player"
)

func TestTick_FullEnergyRegenInOneHour(t *testing.T) {
	e, clock := newEngineForTest(t)
	s := e.State()
	s.Energy = 0

	clock.Advance(time.Hour)
	res := e.Tick(clock.Now())

	assert.Equal(t, s.MaxEnergy, s.Energy)
	assert.Equal(t, int64(100), res.EnergyRecovered)
	assert.Equal(t, clock.Now().UnixMilli(), s.LastEnergyRecovery)
}

func TestTick_EnergyRegenIsCappedAtMax(t *testing.T) {
	e, clock := newEngineForTest(t)
	s := e.State()
	s.Energy = 90

	clock.Advance(2 * time.Hour)
	res := e.Tick(clock.Now())

	assert.Equal(t, int64(100), s.Energy)
	assert.Equal(t, int64(10), res.EnergyRecovered)
}

func TestTick_ShortTicksRegenerateLikeOneLongTick(t *testing.T) {
	// maxEnergy 100 regenerates one unit every 36 seconds. A 30-second
	// tick floors to zero; the remainder must carry so that two of them
	// equal a single 60-second tick.
	split, splitClock := newEngineForTest(t)
	split.State().Energy = 0
	splitClock.Advance(30 * time.Second)
	split.Tick(splitClock.Now())
	splitClock.Advance(30 * time.Second)
	split.Tick(splitClock.Now())

	whole, wholeClock := newEngineForTest(t)
	whole.State().Energy = 0
	wholeClock.Advance(60 * time.Second)
	whole.Tick(wholeClock.Now())

	assert.Equal(t, whole.State().Energy, split.State().Energy)
	assert.Equal(t, int64(1), split.State().Energy)
}

func TestTick_EnergyWatermarkAlwaysAdvances(t *testing.T) {
	e, clock := newEngineForTest(t)
	s := e.State()
	s.Energy = 50

	clock.Advance(10 * time.Second)
	e.Tick(clock.Now())
	assert.Equal(t, clock.Now().UnixMilli(), s.LastEnergyRecovery,
		"watermark advances even when the floored gain is zero")
}

func TestTick_PassiveAccruesPerMinute(t *testing.T) {
	e, clock := newEngineForTest(t)
	s := e.State()
	// protein_synthesis level 1 yields 3/minute.
	s.SetUpgradeLevel(player.CategoryPassive, 0, "protein_synthesis", 1)

	clock.Advance(10 * time.Minute)
	res := e.Tick(clock.Now())

	assert.Equal(t, int64(30), res.PassiveEarned)
	assert.Equal(t, int64(30), s.PassiveAccumulated)
	assert.Equal(t, clock.Now().UnixMilli(), s.LastPassiveGenTime)
}

func TestTick_PassiveWatermarkFrozenAtZeroRate(t *testing.T) {
	e, clock := newEngineForTest(t)
	s := e.State()
	start := s.LastPassiveGenTime

	clock.Advance(20 * time.Minute)
	e.Tick(clock.Now())
	assert.Equal(t, start, s.LastPassiveGenTime,
		"with no passive income the elapsed time keeps accumulating")

	// The waiting minutes pay out retroactively once a rate exists.
	s.SetUpgradeLevel(player.CategoryPassive, 0, "protein_synthesis", 1)
	clock.Advance(10 * time.Minute)
	res := e.Tick(clock.Now())
	assert.Equal(t, int64(90), res.PassiveEarned, "30 minutes at 3/minute")
}

func TestTick_PassiveForfeitedAfterThreeHours(t *testing.T) {
	e, clock := newEngineForTest(t)
	s := e.State()
	s.PassiveAccumulated = 500

	clock.Advance(3*time.Hour - time.Second)
	res := e.Tick(clock.Now())
	assert.Zero(t, res.PassiveForfeited)
	assert.Equal(t, int64(500), s.PassiveAccumulated)

	clock.Advance(time.Second)
	res = e.Tick(clock.Now())
	assert.Equal(t, int64(500), res.PassiveForfeited)
	assert.Zero(t, s.PassiveAccumulated)
}

func TestTick_ActiveBoosterPreventsForfeiture(t *testing.T) {
	e, clock := newEngineForTest(t)
	s := e.State()
	s.PassiveAccumulated = 500
	s.TelegramStars = 50
	require.NoError(t, e.BuyBooster("energy_boost_48h"))

	clock.Advance(4 * time.Hour)
	res := e.Tick(clock.Now())
	assert.Zero(t, res.PassiveForfeited)
	assert.Equal(t, int64(500), s.PassiveAccumulated)

	// Once the booster expires, the overdue pool is dropped.
	clock.Advance(48 * time.Hour)
	res = e.Tick(clock.Now())
	assert.Equal(t, int64(500), res.PassiveForfeited)
	assert.Zero(t, s.PassiveAccumulated)
}

func TestTick_EvolvesWhenPassiveRewardCrossesThreshold(t *testing.T) {
	e, clock := newEngineForTest(t)
	s := e.State()
	s.Geno = 999

	clock.Advance(time.Second)
	res := e.Tick(clock.Now())
	assert.False(t, res.Evolved, "999 geno is below the Amoeba threshold")

	s.Geno = 1_000
	res = e.Tick(clock.Now())
	assert.True(t, res.Evolved)
	assert.Equal(t, 1, s.StageIndex)
}
