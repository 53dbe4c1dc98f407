package player

import (
	"encoding/json"
	"fmt"
)

// Field names are the JSON keys of State's top-level fields. They double as
// the dirty-tracking vocabulary: a mutation marks the fields it touched, the
// uploader sends the current value per marked field, and push updates name
// the fields they carry.
const (
	FieldGeno                  = "geno"
	FieldEnergy                = "energy"
	FieldMaxEnergy             = "maxEnergy"
	FieldStageIndex            = "stageIndex"
	FieldUpgrades              = "upgrades"
	FieldActiveBoosters        = "activeBoosters"
	FieldCompletedTasks        = "completedTasks"
	FieldPassiveAccumulated    = "passiveAccumulated"
	FieldReferredBy            = "referredBy"
	FieldReferrals             = "referrals"
	FieldTotalClicks           = "totalClicks"
	FieldTotalGenoEarned       = "totalGenoEarned"
	FieldTelegramStars         = "telegramStars"
	FieldBoostersActivated     = "boostersActivated"
	FieldLastEnergyRecovery    = "lastEnergyRecovery"
	FieldLastPassiveGenTime    = "lastPassiveGenTime"
	FieldLastPassiveCollection = "lastPassiveCollection"
	FieldLastActiveTime        = "lastActiveTime"
)

// Value returns the current value of one named field, for building an
// upload payload. Unknown fields return (nil, false).
func (s *State) Value(field string) (any, bool) {
	switch field {
	case FieldGeno:
		return s.Geno, true
	case FieldEnergy:
		return s.Energy, true
	case FieldMaxEnergy:
		return s.MaxEnergy, true
	case FieldStageIndex:
		return s.StageIndex, true
	case FieldUpgrades:
		return s.Upgrades, true
	case FieldActiveBoosters:
		return s.ActiveBoosters, true
	case FieldCompletedTasks:
		return s.CompletedTasks, true
	case FieldPassiveAccumulated:
		return s.PassiveAccumulated, true
	case FieldReferredBy:
		return s.ReferredBy, true
	case FieldReferrals:
		return s.Referrals, true
	case FieldTotalClicks:
		return s.TotalClicks, true
	case FieldTotalGenoEarned:
		return s.TotalGenoEarned, true
	case FieldTelegramStars:
		return s.TelegramStars, true
	case FieldBoostersActivated:
		return s.BoostersActivated, true
	case FieldLastEnergyRecovery:
		return s.LastEnergyRecovery, true
	case FieldLastPassiveGenTime:
		return s.LastPassiveGenTime, true
	case FieldLastPassiveCollection:
		return s.LastPassiveCollection, true
	case FieldLastActiveTime:
		return s.LastActiveTime, true
	default:
		return nil, false
	}
}

// ApplyField decodes one named field into the state, last-write-wins. Used
// for push updates and for diff uploads on the server. Unknown fields and
// undecodable values are reported, not applied; the rest of a batch still
// applies.
func (s *State) ApplyField(field string, raw json.RawMessage) error {
	decode := func(dst any) error {
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
		return nil
	}

	switch field {
	case FieldGeno:
		return decode(&s.Geno)
	case FieldEnergy:
		return decode(&s.Energy)
	case FieldMaxEnergy:
		return decode(&s.MaxEnergy)
	case FieldStageIndex:
		return decode(&s.StageIndex)
	case FieldUpgrades:
		return decode(&s.Upgrades)
	case FieldActiveBoosters:
		return decode(&s.ActiveBoosters)
	case FieldCompletedTasks:
		return decode(&s.CompletedTasks)
	case FieldPassiveAccumulated:
		return decode(&s.PassiveAccumulated)
	case FieldReferredBy:
		return decode(&s.ReferredBy)
	case FieldReferrals:
		return decode(&s.Referrals)
	case FieldTotalClicks:
		return decode(&s.TotalClicks)
	case FieldTotalGenoEarned:
		return decode(&s.TotalGenoEarned)
	case FieldTelegramStars:
		return decode(&s.TelegramStars)
	case FieldBoostersActivated:
		return decode(&s.BoostersActivated)
	case FieldLastEnergyRecovery:
		return decode(&s.LastEnergyRecovery)
	case FieldLastPassiveGenTime:
		return decode(&s.LastPassiveGenTime)
	case FieldLastPassiveCollection:
		return decode(&s.LastPassiveCollection)
	case FieldLastActiveTime:
		return decode(&s.LastActiveTime)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
}

// ApplyChanges applies a batch of named fields. The ID field is never
// applied from a batch; local identity is immutable. Returns the first
// error encountered, after attempting every field.
func (s *State) ApplyChanges(changes map[string]json.RawMessage) error {
	var firstErr error
	for field, raw := range changes {
		if field == "id" {
			continue
		}
		if err := s.ApplyField(field, raw); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
