package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEntryCreated = "timeentry.created"
	EventTypeEntryUpdated = "timeentry.updated"
	EventTypeEntryDeleted = "timeentry.deleted"
)

// EntryChangedEvent is published on every time entry mutation. The
// history recorder consumes it to append an audit snapshot.
type EntryChangedEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	EntryID     string    `json:"entry_id"`
	UserID      string    `json:"user_id"`
	ChangedByID string    `json:"changed_by_id"`
	Snapshot    string    `json:"snapshot"`
}

func NewEntryChangedEvent(eventType, entryID, userID, changedByID, snapshot string) *EntryChangedEvent {
	return &EntryChangedEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		Timestamp:   time.Now(),
		EntryID:     entryID,
		UserID:      userID,
		ChangedByID: changedByID,
		Snapshot:    snapshot,
	}
}

func (e *EntryChangedEvent) EventType() string {
	return e.Type
}

func (e *EntryChangedEvent) EventID() string {
	return e.ID
}

func (e *EntryChangedEvent) OccurredAt() time.Time {
	return e.Timestamp
}
