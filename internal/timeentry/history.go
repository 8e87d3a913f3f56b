package timeentry

import (
	"context"
	"fmt"
	"log/slog"

	timeentryDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/timeentry"
	"github.com/Adprivat/praxislabor/internal/core/events"
)

var historyActions = map[string]string{
	events.EventTypeEntryCreated: timeentryDatamodel.HistoryActionCreated,
	events.EventTypeEntryUpdated: timeentryDatamodel.HistoryActionUpdated,
	events.EventTypeEntryDeleted: timeentryDatamodel.HistoryActionDeleted,
}

// RegisterHistoryRecorder subscribes an audit-trail writer for entry
// mutation events. Recording is best effort; a failed append is logged
// and never fails the originating request.
func RegisterHistoryRecorder(bus *events.EventBus, repo RepositoryAPI, logger *slog.Logger) {
	handler := func(ctx context.Context, event events.Event) error {
		changed, ok := event.(*events.EntryChangedEvent)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.EventType())
		}

		record := &timeentryDatamodel.TimeEntryHistory{
			EntryID:     changed.EntryID,
			Action:      historyActions[changed.EventType()],
			Snapshot:    changed.Snapshot,
			ChangedAt:   changed.OccurredAt(),
			ChangedByID: &changed.ChangedByID,
		}
		if err := repo.AppendHistory(record); err != nil {
			logger.Error("failed to append entry history", "error", err, "entry_id", changed.EntryID)
			return err
		}
		return nil
	}

	for eventType := range historyActions {
		bus.Subscribe(eventType, handler)
	}
}
