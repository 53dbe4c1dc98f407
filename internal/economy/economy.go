// Package economy derives display and pricing values from the catalog and a
// player state. Everything here is a pure function; purchases and clicks
// mutate state elsewhere.
package economy

import (
	"math"

	"github.com/GENOxGAME/GENO/internal/catalog"
	"github.com/GENOxGAME/GENO/internal/player"
)

// ClickPower is the geno earned (and energy spent) per click: base 1 plus
// every owned non-energy click upgrade at stages up to and including the
// current one, with diminishing returns per level.
func ClickPower(c *catalog.Catalog, s *player.State) int64 {
	power := 1.0
	for stage := 0; stage <= s.StageIndex; stage++ {
		su, ok := c.StageUpgrades(stage)
		if !ok {
			continue
		}
		for _, u := range su.Click {
			if u.Energy {
				continue
			}
			level := s.UpgradeLevel(player.CategoryClick, stage, u.ID)
			if level > 0 {
				power += u.Effect * (1 + math.Sqrt(float64(level))*0.8)
			}
		}
	}
	return int64(math.Floor(power))
}

// PassivePerMinute is the passive income rate from every owned passive
// upgrade at stages up to and including the current one.
func PassivePerMinute(c *catalog.Catalog, s *player.State) int64 {
	income := 0.0
	for stage := 0; stage <= s.StageIndex; stage++ {
		su, ok := c.StageUpgrades(stage)
		if !ok {
			continue
		}
		for _, u := range su.Passive {
			level := s.UpgradeLevel(player.CategoryPassive, stage, u.ID)
			if level > 0 {
				income += u.Effect * (1 + math.Sqrt(float64(level))*0.5)
			}
		}
	}
	return int64(math.Floor(income))
}

// UpgradeCost doubles per owned level with no cap.
func UpgradeCost(def catalog.UpgradeDef, currentLevel int) int64 {
	return int64(math.Floor(float64(def.BaseCost) * math.Pow(2, float64(currentLevel))))
}

// StageProgress reports geno accumulated past the current stage threshold
// and the amount needed to reach the next one. done == needed (and ok ==
// false) once the final stage is reached.
func StageProgress(c *catalog.Catalog, s *player.State) (done, needed int64, ok bool) {
	cur, curOK := c.Stage(s.StageIndex)
	next, nextOK := c.NextStage(s.StageIndex)
	if !curOK || !nextOK {
		return 0, 0, false
	}
	done = s.Geno - cur.Threshold
	if done < 0 {
		done = 0
	}
	needed = next.Threshold - cur.Threshold
	if done > needed {
		done = needed
	}
	return done, needed, true
}

// CanAfford reports whether the next level of an upgrade is purchasable.
func CanAfford(def catalog.UpgradeDef, currentLevel int, geno int64) bool {
	return geno >= UpgradeCost(def, currentLevel)
}
