package game

import (
	"math"
	"time"

	"github.com/GENOxGAME/GENO/internal/player"
	"github.com/GENOxGAME/GENO/internal/telemetry"
)

// Full energy regeneration always takes one hour, whatever the capacity.
const energyRecoverySeconds = 3600

// Passive income is forfeited after this long without a collection, unless
// an unexpired booster is active.
const passiveTimeout = 3 * time.Hour

// TickResult reports what one idle-processing pass did.
type TickResult struct {
	EnergyRecovered  int64
	PassiveEarned    int64
	PassiveForfeited int64
	Evolved          bool
}

// Tick advances energy regeneration and passive accrual to now, applies the
// passive forfeiture rule, and re-evaluates evolution. It is safe to call
// at any cadence: regeneration is linear in elapsed wall-clock time, with
// the sub-unit remainder carried between calls so that two 30-second ticks
// equal one 60-second tick.
func (e *Engine) Tick(now time.Time) TickResult {
	s := e.state
	ms := now.UnixMilli()
	var res TickResult

	// Energy regeneration. The watermark advances on every pass, including
	// when the floored gain is zero; the fractional part lives in
	// energyCarry so repeated short ticks do not lose time.
	elapsed := float64(ms-s.LastEnergyRecovery) / 1000
	if elapsed > 0 {
		rate := float64(s.MaxEnergy) / energyRecoverySeconds
		gain := rate*elapsed + e.energyCarry
		add := int64(math.Floor(gain))
		e.energyCarry = gain - float64(add)

		if add > 0 && s.Energy < s.MaxEnergy {
			before := s.Energy
			s.Energy = min64(s.MaxEnergy, s.Energy+add)
			res.EnergyRecovered = s.Energy - before
			e.Dirty.MarkDirty(player.FieldEnergy)
		}
		s.LastEnergyRecovery = ms
		e.Dirty.MarkDirty(player.FieldLastEnergyRecovery)
	}

	// Passive accrual. The watermark only advances while the rate is
	// positive: with zero income the elapsed minutes keep accumulating
	// until a passive upgrade is owned. Asymmetric with energy on purpose;
	// parity with the live game's observed behavior.
	minutes := float64(ms-s.LastPassiveGenTime) / 60000
	if minutes > 0 {
		if rate := e.PassivePerMinute(); rate > 0 {
			earned := int64(math.Floor(float64(rate) * minutes))
			if earned > 0 {
				s.PassiveAccumulated += earned
				res.PassiveEarned = earned
				e.Dirty.MarkDirty(player.FieldPassiveAccumulated)
			}
			s.LastPassiveGenTime = ms
			e.Dirty.MarkDirty(player.FieldLastPassiveGenTime)
		}
	}

	// Forfeit the pending pool after three hours without collection,
	// unless a booster is keeping it alive.
	if ms-s.LastPassiveCollection >= passiveTimeout.Milliseconds() &&
		s.PassiveAccumulated > 0 && !s.HasActiveBooster(now) {
		res.PassiveForfeited = s.PassiveAccumulated
		s.PassiveAccumulated = 0
		e.Dirty.MarkDirty(player.FieldPassiveAccumulated)
		e.record(telemetry.EventPassiveForfeited, telemetry.EventMetadata{"amount": res.PassiveForfeited})
	}

	res.Evolved = e.EvaluateEvolution()
	return res
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
