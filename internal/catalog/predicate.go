package catalog

import "fmt"

// PredicateKind is the closed set of task unlock conditions. Predicates are
// pure data; the game engine interprets them against the player state.
type PredicateKind string

const (
	PredStageAtLeast             PredicateKind = "stage_at_least"
	PredClicksAtLeast            PredicateKind = "clicks_at_least"
	PredEarnedAtLeast            PredicateKind = "earned_at_least"
	PredMaxEnergyAtLeast         PredicateKind = "max_energy_at_least"
	PredUpgradesOwnedAtLeast     PredicateKind = "upgrades_owned_at_least"
	PredEnergyUpgradesAtLeast    PredicateKind = "energy_upgrades_at_least"
	PredPassivePoolAtLeast       PredicateKind = "passive_pool_at_least"
	PredTasksCompletedAtLeast    PredicateKind = "tasks_completed_at_least"
	PredReferralsAtLeast         PredicateKind = "referrals_at_least"
	PredBoostersActivatedAtLeast PredicateKind = "boosters_activated_at_least"
	PredClickPowerAtLeast        PredicateKind = "click_power_at_least"
	PredAllOf                    PredicateKind = "all_of"
)

// Predicate is one unlock condition. Threshold is the comparison value for
// every kind except all_of, which requires every sub-predicate to hold.
type Predicate struct {
	Kind      PredicateKind `yaml:"kind" json:"kind"`
	Threshold int64         `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	AllOf     []Predicate   `yaml:"all_of,omitempty" json:"all_of,omitempty"`
}

// Validate rejects unknown kinds and malformed compounds.
func (p Predicate) Validate() error {
	switch p.Kind {
	case PredStageAtLeast, PredClicksAtLeast, PredEarnedAtLeast,
		PredMaxEnergyAtLeast, PredUpgradesOwnedAtLeast, PredEnergyUpgradesAtLeast,
		PredPassivePoolAtLeast, PredTasksCompletedAtLeast, PredReferralsAtLeast,
		PredBoostersActivatedAtLeast, PredClickPowerAtLeast:
		return nil
	case PredAllOf:
		if len(p.AllOf) == 0 {
			return fmt.Errorf("all_of predicate with no sub-predicates")
		}
		for _, sub := range p.AllOf {
			if err := sub.Validate(); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown predicate kind %q", p.Kind)
	}
}
