package telemetry

import (
	"encoding/json"
	"time"
)

// Stats summarizes engine and sync activity over a period, for the admin
// surface and for balancing.
type Stats struct {
	Period            string            `json:"period"`
	EventCounts       map[EventType]int `json:"event_counts"`
	Clicks            int               `json:"clicks"`
	GenoFromClicks    int64             `json:"geno_from_clicks"`
	UpgradesPurchased int               `json:"upgrades_purchased"`
	TaskCompletions   int               `json:"task_completions"`
	StageEvolutions   int               `json:"stage_evolutions"`
	PassiveForfeits   int               `json:"passive_forfeits"`
	SyncUploads       int               `json:"sync_uploads"`
	SyncReconciles    int               `json:"sync_reconciles"`
	TransportFailures int               `json:"transport_failures"`
	UpgradeUsage      map[string]int    `json:"upgrade_usage"`
}

// CalculateStats folds events recorded since a point in time into Stats.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:       since.Format("2006-01-02"),
		EventCounts:  make(map[EventType]int),
		UpgradeUsage: make(map[string]int),
	}

	for _, event := range events {
		if event.Timestamp.Before(since) {
			continue
		}
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventClick:
			stats.Clicks++
			if power, ok := metadata["power"].(float64); ok {
				stats.GenoFromClicks += int64(power)
			}
		case EventUpgradePurchased:
			stats.UpgradesPurchased++
			if id, ok := metadata["upgrade"].(string); ok {
				stats.UpgradeUsage[id]++
			}
		case EventTaskCompleted:
			stats.TaskCompletions++
		case EventStageEvolved:
			stats.StageEvolutions++
		case EventPassiveForfeited:
			stats.PassiveForfeits++
		case EventSyncUploaded:
			stats.SyncUploads++
		case EventSyncReconciled:
			stats.SyncReconciles++
		case EventTransportFailure:
			stats.TransportFailures++
		}
	}

	return stats, nil
}
