package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// UpgradeCategory separates upgrades that strengthen the click from upgrades
// that generate passive income.
type UpgradeCategory string

const (
	CategoryClick   UpgradeCategory = "click"
	CategoryPassive UpgradeCategory = "passive"
)

// Currency identifies which balance a booster price is debited from.
type Currency string

const (
	CurrencyGeno  Currency = "geno"
	CurrencyStars Currency = "stars"
)

// Stage is one tier of the evolution ladder. Stages are ordered by
// Threshold ascending; Ordinal 0 is the starting stage.
type Stage struct {
	Ordinal     int    `yaml:"ordinal" json:"ordinal"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Threshold   int64  `yaml:"threshold" json:"threshold"`
}

// UpgradeDef is a purchasable upgrade within a stage. Energy upgrades raise
// max energy at purchase time instead of contributing to click power.
type UpgradeDef struct {
	ID       string  `yaml:"id" json:"id"`
	Name     string  `yaml:"name" json:"name"`
	Effect   float64 `yaml:"effect" json:"effect"`
	BaseCost int64   `yaml:"base_cost" json:"base_cost"`
	Energy   bool    `yaml:"energy,omitempty" json:"energy,omitempty"`
}

// StageUpgrades holds the upgrade lists unlocked by a single stage.
type StageUpgrades struct {
	Click   []UpgradeDef `yaml:"click" json:"click"`
	Passive []UpgradeDef `yaml:"passive" json:"passive"`
}

// TaskDef is a reward task. AutoComplete tasks (stage arrivals) are credited
// without user action as soon as their predicate becomes true. UnlockRank
// gates visibility by how many tasks the player has already completed.
type TaskDef struct {
	ID           string    `yaml:"id" json:"id"`
	Title        string    `yaml:"title" json:"title"`
	Reward       int64     `yaml:"reward" json:"reward"`
	UnlockRank   int       `yaml:"unlock_rank" json:"unlock_rank"`
	AutoComplete bool      `yaml:"auto_complete,omitempty" json:"auto_complete,omitempty"`
	Requires     Predicate `yaml:"requires" json:"requires"`
}

// BoosterDef is a purchasable modifier. DurationMS == 0 means the booster
// applies instantly; otherwise activation records an absolute expiry.
type BoosterDef struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	DurationMS int64    `yaml:"duration_ms" json:"duration_ms"`
	Price      int64    `yaml:"price" json:"price"`
	PriceIn    Currency `yaml:"currency" json:"currency"`
}

// Catalog is the full static game data. It is built once at process start
// and never mutated afterwards.
type Catalog struct {
	stages     []Stage
	upgrades   map[int]StageUpgrades
	tasks      []TaskDef
	taskByID   map[string]TaskDef
	boosters   []BoosterDef
	boostByID  map[string]BoosterDef
	upgradeIdx map[upgradeKey]UpgradeDef
}

type upgradeKey struct {
	category UpgradeCategory
	stage    int
	id       string
}

var (
	ErrNoStages          = errors.New("catalog has no stages")
	ErrUnorderedStages   = errors.New("stage thresholds must be strictly ascending")
	ErrDuplicateID       = errors.New("duplicate id in catalog")
	ErrInvalidStageIndex = errors.New("upgrade references unknown stage")
)

// New validates the raw data and builds the lookup indexes.
func New(stages []Stage, upgrades map[int]StageUpgrades, tasks []TaskDef, boosters []BoosterDef) (*Catalog, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}

	sorted := make([]Stage, len(stages))
	copy(sorted, stages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Threshold < sorted[j].Threshold })
	for i := range sorted {
		if i > 0 && sorted[i].Threshold <= sorted[i-1].Threshold {
			return nil, fmt.Errorf("%w: %q and %q", ErrUnorderedStages, sorted[i-1].Name, sorted[i].Name)
		}
		sorted[i].Ordinal = i
	}

	c := &Catalog{
		stages:     sorted,
		upgrades:   map[int]StageUpgrades{},
		tasks:      tasks,
		taskByID:   map[string]TaskDef{},
		boosters:   boosters,
		boostByID:  map[string]BoosterDef{},
		upgradeIdx: map[upgradeKey]UpgradeDef{},
	}

	for stage, su := range upgrades {
		if stage < 0 || stage >= len(sorted) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidStageIndex, stage)
		}
		c.upgrades[stage] = su
		for _, u := range su.Click {
			k := upgradeKey{CategoryClick, stage, u.ID}
			if _, dup := c.upgradeIdx[k]; dup {
				return nil, fmt.Errorf("%w: click upgrade %q at stage %d", ErrDuplicateID, u.ID, stage)
			}
			c.upgradeIdx[k] = u
		}
		for _, u := range su.Passive {
			k := upgradeKey{CategoryPassive, stage, u.ID}
			if _, dup := c.upgradeIdx[k]; dup {
				return nil, fmt.Errorf("%w: passive upgrade %q at stage %d", ErrDuplicateID, u.ID, stage)
			}
			c.upgradeIdx[k] = u
		}
	}

	for _, t := range tasks {
		if _, dup := c.taskByID[t.ID]; dup {
			return nil, fmt.Errorf("%w: task %q", ErrDuplicateID, t.ID)
		}
		c.taskByID[t.ID] = t
	}
	for _, b := range boosters {
		if _, dup := c.boostByID[b.ID]; dup {
			return nil, fmt.Errorf("%w: booster %q", ErrDuplicateID, b.ID)
		}
		c.boostByID[b.ID] = b
	}

	return c, nil
}

// Stages returns the full stage ladder ordered by threshold.
func (c *Catalog) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// Stage looks up a stage by ordinal.
func (c *Catalog) Stage(ordinal int) (Stage, bool) {
	if ordinal < 0 || ordinal >= len(c.stages) {
		return Stage{}, false
	}
	return c.stages[ordinal], true
}

// NextStage returns the stage after the given ordinal, if one exists.
func (c *Catalog) NextStage(ordinal int) (Stage, bool) {
	return c.Stage(ordinal + 1)
}

// MaxStage returns the highest valid stage ordinal.
func (c *Catalog) MaxStage() int {
	return len(c.stages) - 1
}

// StageUpgrades returns the upgrade lists unlocked by a stage.
func (c *Catalog) StageUpgrades(ordinal int) (StageUpgrades, bool) {
	su, ok := c.upgrades[ordinal]
	return su, ok
}

// Upgrade looks up a single upgrade definition.
func (c *Catalog) Upgrade(category UpgradeCategory, stage int, id string) (UpgradeDef, bool) {
	u, ok := c.upgradeIdx[upgradeKey{category, stage, id}]
	return u, ok
}

// Tasks returns all task definitions in catalog order.
func (c *Catalog) Tasks() []TaskDef {
	out := make([]TaskDef, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Task looks up a task definition by id.
func (c *Catalog) Task(id string) (TaskDef, bool) {
	t, ok := c.taskByID[id]
	return t, ok
}

// Boosters returns all booster definitions.
func (c *Catalog) Boosters() []BoosterDef {
	out := make([]BoosterDef, len(c.boosters))
	copy(out, c.boosters)
	return out
}

// Booster looks up a booster definition by id.
func (c *Catalog) Booster(id string) (BoosterDef, bool) {
	b, ok := c.boostByID[id]
	return b, ok
}
