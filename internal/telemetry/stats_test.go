package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStats_FoldsEventsSince(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventClick, EventMetadata{"power": 3}))
	require.NoError(t, repo.RecordEvent(EventClick, EventMetadata{"power": 5}))
	require.NoError(t, repo.RecordEvent(EventUpgradePurchased, EventMetadata{"upgrade": "cell_membrane"}))
	require.NoError(t, repo.RecordEvent(EventUpgradePurchased, EventMetadata{"upgrade": "cell_membrane"}))
	require.NoError(t, repo.RecordEvent(EventStageEvolved, EventMetadata{"stage": 1}))
	require.NoError(t, repo.RecordEvent(EventSyncUploaded, EventMetadata{"fields": 4}))
	require.NoError(t, repo.RecordEvent(EventTransportFailure, EventMetadata{"op": "upload"}))

	events, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)

	stats, err := CalculateStats(events, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Clicks)
	assert.Equal(t, int64(8), stats.GenoFromClicks)
	assert.Equal(t, 2, stats.UpgradesPurchased)
	assert.Equal(t, 2, stats.UpgradeUsage["cell_membrane"])
	assert.Equal(t, 1, stats.StageEvolutions)
	assert.Equal(t, 1, stats.SyncUploads)
	assert.Equal(t, 1, stats.TransportFailures)
}

func TestCalculateStats_IgnoresEventsBeforeCutoff(t *testing.T) {
	old := Event{
		Type:      EventClick,
		Timestamp: time.Now().Add(-2 * time.Hour),
		Metadata:  `{"power": 1}`,
	}
	stats, err := CalculateStats([]Event{old}, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Zero(t, stats.Clicks)
}

func TestMemoryRepository_FiltersByType(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.RecordEvent(EventClick, nil))
	require.NoError(t, repo.RecordEvent(EventTaskCompleted, nil))

	events, err := repo.GetEvents(time.Time{}, []EventType{EventTaskCompleted})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventTaskCompleted, events[0].Type)

	require.NoError(t, repo.Clear())
	events, err = repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMemoryRepository_DropsOldestPastCap(t *testing.T) {
	repo := NewMemoryRepository()
	repo.cap = 3

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.RecordEvent(EventClick, EventMetadata{"n": i}))
	}

	events, err := repo.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, 3, events[0].ID, "the two oldest events fell off")
	assert.Equal(t, 5, events[2].ID)
}
