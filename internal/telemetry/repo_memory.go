package telemetry

import (
	"encoding/json"
	"sync"
	"time"
)

// Repository stores the event stream the engine and the sync loops record.
type Repository interface {
	RecordEvent(eventType EventType, metadata EventMetadata) error
	GetEvents(since time.Time, eventTypes []EventType) ([]Event, error)
	Clear() error
}

// A long session records an event per click, so the log is bounded: once
// the cap is reached the oldest events fall off. Stats only ever fold a
// recent window, which the cap comfortably covers.
const defaultEventCap = 50_000

// MemoryRepository is a bounded in-memory event log.
type MemoryRepository struct {
	mu     sync.RWMutex
	events []Event
	nextID int
	cap    int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, cap: defaultEventCap}
}

func (r *MemoryRepository) RecordEvent(eventType EventType, metadata EventMetadata) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Event{
		ID:        r.nextID,
		Type:      eventType,
		Timestamp: time.Now(),
		Metadata:  string(metadataJSON),
	})
	r.nextID++
	if len(r.events) > r.cap {
		r.events = append(r.events[:0:0], r.events[len(r.events)-r.cap:]...)
	}
	return nil
}

// GetEvents returns events at or after since. An empty eventTypes filter
// means every type.
func (r *MemoryRepository) GetEvents(since time.Time, eventTypes []EventType) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Event, 0, len(r.events))
	for _, event := range r.events {
		if event.Timestamp.Before(since) {
			continue
		}
		if !matchesType(event.Type, eventTypes) {
			continue
		}
		result = append(result, event)
	}
	return result, nil
}

func (r *MemoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
	r.nextID = 1
	return nil
}

func matchesType(t EventType, filter []EventType) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if f == t {
			return true
		}
	}
	return false
}
