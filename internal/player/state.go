package player

import (
	"time"

	"github.com/google/uuid"
)

// UpgradeLevels maps category -> stage ordinal -> upgrade id -> level.
// Absence at any depth means level 0.
type UpgradeLevels map[string]map[int]map[string]int

const (
	CategoryClick   = "click"
	CategoryPassive = "passive"
)

// State is the single mutable player record. All timestamps are Unix
// milliseconds, matching the wire snapshot format. The struct is not
// self-synchronizing; ownership belongs to one logical thread of control
// (the session loop on the client, the store mutex on the server).
type State struct {
	ID                 string           `json:"id"`
	Geno               int64            `json:"geno"`
	Energy             int64            `json:"energy"`
	MaxEnergy          int64            `json:"maxEnergy"`
	StageIndex         int              `json:"stageIndex"`
	Upgrades           UpgradeLevels    `json:"upgrades"`
	ActiveBoosters     map[string]int64 `json:"activeBoosters"`
	CompletedTasks     []string         `json:"completedTasks"`
	PassiveAccumulated int64            `json:"passiveAccumulated"`
	ReferredBy         string           `json:"referredBy,omitempty"`
	Referrals          []string         `json:"referrals,omitempty"`
	TotalClicks        int64            `json:"totalClicks"`
	TotalGenoEarned    int64            `json:"totalGenoEarned"`
	TelegramStars      int64            `json:"telegramStars"`
	BoostersActivated  int64            `json:"boostersActivated"`

	LastEnergyRecovery    int64 `json:"lastEnergyRecovery"`
	LastPassiveGenTime    int64 `json:"lastPassiveGenTime"`
	LastPassiveCollection int64 `json:"lastPassiveCollection"`
	LastActiveTime        int64 `json:"lastActiveTime"`
}

const (
	DefaultMaxEnergy = 100
	StartingStage    = 0
)

// New builds a fresh state with a generated identity and all watermarks set
// to now.
func New(now time.Time) *State {
	return NewWithID(uuid.NewString(), now)
}

// NewWithID builds a fresh state for a known identity.
func NewWithID(id string, now time.Time) *State {
	ms := now.UnixMilli()
	return &State{
		ID:                    id,
		Geno:                  0,
		Energy:                DefaultMaxEnergy,
		MaxEnergy:             DefaultMaxEnergy,
		StageIndex:            StartingStage,
		Upgrades:              UpgradeLevels{},
		ActiveBoosters:        map[string]int64{},
		CompletedTasks:        nil,
		LastEnergyRecovery:    ms,
		LastPassiveGenTime:    ms,
		LastPassiveCollection: ms,
		LastActiveTime:        ms,
	}
}

// Normalize fills in any zero-valued containers and clamps fields a remote
// snapshot could have delivered malformed. Remote data is never trusted to
// be well shaped.
func (s *State) Normalize(now time.Time) {
	ms := now.UnixMilli()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Upgrades == nil {
		s.Upgrades = UpgradeLevels{}
	}
	if s.ActiveBoosters == nil {
		s.ActiveBoosters = map[string]int64{}
	}
	if s.MaxEnergy <= 0 {
		s.MaxEnergy = DefaultMaxEnergy
	}
	if s.Energy < 0 {
		s.Energy = 0
	}
	if s.Energy > s.MaxEnergy {
		s.Energy = s.MaxEnergy
	}
	if s.Geno < 0 {
		s.Geno = 0
	}
	if s.PassiveAccumulated < 0 {
		s.PassiveAccumulated = 0
	}
	if s.StageIndex < 0 {
		s.StageIndex = StartingStage
	}
	if s.LastEnergyRecovery <= 0 {
		s.LastEnergyRecovery = ms
	}
	if s.LastPassiveGenTime <= 0 {
		s.LastPassiveGenTime = ms
	}
	if s.LastPassiveCollection <= 0 {
		s.LastPassiveCollection = ms
	}
	if s.LastActiveTime <= 0 {
		s.LastActiveTime = ms
	}
}

// Clone deep-copies the state.
func (s *State) Clone() *State {
	out := *s

	out.Upgrades = UpgradeLevels{}
	for cat, stages := range s.Upgrades {
		out.Upgrades[cat] = map[int]map[string]int{}
		for stage, levels := range stages {
			m := make(map[string]int, len(levels))
			for id, lvl := range levels {
				m[id] = lvl
			}
			out.Upgrades[cat][stage] = m
		}
	}

	out.ActiveBoosters = make(map[string]int64, len(s.ActiveBoosters))
	for id, exp := range s.ActiveBoosters {
		out.ActiveBoosters[id] = exp
	}

	out.CompletedTasks = append([]string(nil), s.CompletedTasks...)
	out.Referrals = append([]string(nil), s.Referrals...)
	return &out
}

// UpgradeLevel returns the owned level for one upgrade. Absence is level 0.
func (s *State) UpgradeLevel(category string, stage int, id string) int {
	stages, ok := s.Upgrades[category]
	if !ok {
		return 0
	}
	levels, ok := stages[stage]
	if !ok {
		return 0
	}
	return levels[id]
}

// SetUpgradeLevel records an upgrade level, creating intermediate maps.
func (s *State) SetUpgradeLevel(category string, stage int, id string, level int) {
	if s.Upgrades == nil {
		s.Upgrades = UpgradeLevels{}
	}
	stages, ok := s.Upgrades[category]
	if !ok {
		stages = map[int]map[string]int{}
		s.Upgrades[category] = stages
	}
	levels, ok := stages[stage]
	if !ok {
		levels = map[string]int{}
		stages[stage] = levels
	}
	levels[id] = level
}

// OwnedUpgrades counts distinct owned upgrades (level >= 1) across both
// categories and all stages.
func (s *State) OwnedUpgrades() int {
	n := 0
	for _, stages := range s.Upgrades {
		for _, levels := range stages {
			for _, lvl := range levels {
				if lvl > 0 {
					n++
				}
			}
		}
	}
	return n
}

// HasCompletedTask reports membership in the completed-task set.
func (s *State) HasCompletedTask(id string) bool {
	for _, t := range s.CompletedTasks {
		if t == id {
			return true
		}
	}
	return false
}

// HasActiveBooster reports whether any booster expiry lies in the future.
// Expired entries stay in the map; they are simply inert.
func (s *State) HasActiveBooster(now time.Time) bool {
	ms := now.UnixMilli()
	for _, expiry := range s.ActiveBoosters {
		if expiry > ms {
			return true
		}
	}
	return false
}
