package economy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GENOxGAME/GENO/internal/catalog"
	"github.com/GENOxGAME/GENO/internal/player"
)

func newState(t *testing.T) *player.State {
	t.Helper()
	return player.NewWithID("p1", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestClickPower_BaseIsOne(t *testing.T) {
	c := catalog.Default()
	s := newState(t)
	assert.Equal(t, int64(1), ClickPower(c, s))
}

func TestClickPower_DiminishingReturnsPerLevel(t *testing.T) {
	c := catalog.Default()
	s := newState(t)

	// effect 1, level 1: 1 + 1*(1 + 1*0.8) = 2.8, floors to 2
	s.SetUpgradeLevel(player.CategoryClick, 0, "cell_membrane", 1)
	assert.Equal(t, int64(2), ClickPower(c, s))

	// level 4: 1 + 1*(1 + 2*0.8) = 3.6, floors to 3
	s.SetUpgradeLevel(player.CategoryClick, 0, "cell_membrane", 4)
	assert.Equal(t, int64(3), ClickPower(c, s))
}

func TestClickPower_IgnoresEnergyAndLockedStageUpgrades(t *testing.T) {
	c := catalog.Default()
	s := newState(t)

	// Energy upgrades raise capacity at purchase time, never click power.
	s.SetUpgradeLevel(player.CategoryClick, 0, "cell_energy", 3)
	assert.Equal(t, int64(1), ClickPower(c, s))

	// A level recorded for a stage above the current one contributes
	// nothing until the player evolves into that stage.
	s.SetUpgradeLevel(player.CategoryClick, 1, "pseudopod_strength", 2)
	assert.Equal(t, int64(1), ClickPower(c, s))

	s.StageIndex = 1
	// pseudopod: effect 2, level 2: 2*(1 + sqrt(2)*0.8) ~= 4.26
	assert.Equal(t, int64(5), ClickPower(c, s))
}

func TestPassivePerMinute(t *testing.T) {
	c := catalog.Default()
	s := newState(t)
	assert.Zero(t, PassivePerMinute(c, s))

	// effect 0.5, level 1: 0.5*(1 + 0.5) = 0.75, floors to 0
	s.SetUpgradeLevel(player.CategoryPassive, 0, "basic_metabolism", 1)
	assert.Zero(t, PassivePerMinute(c, s))

	// effect 2, level 1: 2*(1 + 0.5) = 3; total 3.75 floors to 3
	s.SetUpgradeLevel(player.CategoryPassive, 0, "protein_synthesis", 1)
	assert.Equal(t, int64(3), PassivePerMinute(c, s))
}

func TestUpgradeCost_DoublesPerLevel(t *testing.T) {
	def := catalog.UpgradeDef{ID: "u", BaseCost: 100}
	assert.Equal(t, int64(100), UpgradeCost(def, 0))
	assert.Equal(t, int64(200), UpgradeCost(def, 1))
	assert.Equal(t, int64(400), UpgradeCost(def, 2))
	assert.Equal(t, int64(102400), UpgradeCost(def, 10))
}

func TestCanAfford(t *testing.T) {
	def := catalog.UpgradeDef{ID: "u", BaseCost: 100}
	assert.True(t, CanAfford(def, 0, 100))
	assert.False(t, CanAfford(def, 0, 99))
	assert.False(t, CanAfford(def, 1, 100))
}

func TestStageProgress(t *testing.T) {
	c := catalog.Default()
	s := newState(t)

	s.Geno = 600
	done, needed, ok := StageProgress(c, s)
	require.True(t, ok)
	assert.Equal(t, int64(600), done)
	assert.Equal(t, int64(1_000), needed)

	// Overshoot is clamped to the segment.
	s.Geno = 4_000
	done, needed, ok = StageProgress(c, s)
	require.True(t, ok)
	assert.Equal(t, needed, done)

	s.StageIndex = c.MaxStage()
	_, _, ok = StageProgress(c, s)
	assert.False(t, ok, "no progress bar past the final stage")
}

func TestFormatMagnitude(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{999.9, "999"},
		{1_000, "1.00K"},
		{1_250, "1.25K"},
		{999_994, "999.99K"},
		{1_000_000, "1.00M"},
		{2_500_000_000, "2.50B"},
		{1.5e12, "1.50T"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatMagnitude(tc.in), "FormatMagnitude(%v)", tc.in)
	}
}
