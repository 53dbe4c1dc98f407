package telemetry

import "time"

type EventType string

const (
	EventClick            EventType = "click"
	EventUpgradePurchased EventType = "upgrade_purchased"
	EventBoosterActivated EventType = "booster_activated"
	EventTaskCompleted    EventType = "task_completed"
	EventStageEvolved     EventType = "stage_evolved"
	EventPassiveCollected EventType = "passive_collected"
	EventPassiveForfeited EventType = "passive_forfeited"
	EventReferralApplied  EventType = "referral_applied"
	EventSyncUploaded     EventType = "sync_uploaded"
	EventSyncReconciled   EventType = "sync_reconciled"
	EventPushApplied      EventType = "push_applied"
	EventTransportFailure EventType = "transport_failure"
	EventPlayerFetched    EventType = "player_fetched"
	EventPlayerUpdated    EventType = "player_updated"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
