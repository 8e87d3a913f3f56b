package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Adprivat/praxislabor/internal/core/events"
	"github.com/Adprivat/praxislabor/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus debugging commands",
}

var publishEventCmd = &cobra.Command{
	Use:       "publish [created|updated|deleted]",
	Short:     "Publish a sample entry lifecycle event",
	Long:      `Publish a sample entry lifecycle event through the bus and log what a subscriber receives`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"created", "updated", "deleted"},
	Run: func(cmd *cobra.Command, args []string) {
		publishSampleEntryEvent(args[0])
	},
}

var eventEntryID string

var lifecycleEventTypes = map[string]string{
	"created": events.EventTypeEntryCreated,
	"updated": events.EventTypeEntryUpdated,
	"deleted": events.EventTypeEntryDeleted,
}

func publishSampleEntryEvent(lifecycle string) {
	log := logger.L()

	eventType, ok := lifecycleEventTypes[lifecycle]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown lifecycle %q, expected created, updated or deleted\n", lifecycle)
		os.Exit(1)
	}

	bus := events.NewEventBus(log)
	bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		changed, ok := event.(*events.EntryChangedEvent)
		if !ok {
			return fmt.Errorf("unexpected event payload for %s", event.EventType())
		}
		log.Info("subscriber received entry event",
			"event_id", changed.EventID(),
			"event_type", changed.EventType(),
			"entry_id", changed.EntryID,
			"changed_by", changed.ChangedByID)
		return nil
	})

	event := events.NewEntryChangedEvent(eventType, eventEntryID, "debug-user", "debug-user", "{}")

	log.Info("publishing sample entry event", "event_type", eventType, "event_id", event.ID)

	if err := bus.PublishSync(context.Background(), event); err != nil {
		log.Error("failed to publish event", "error", err)
		os.Exit(1)
	}

	log.Info("sample entry event delivered")
}

func init() {
	publishEventCmd.Flags().StringVar(&eventEntryID, "entry-id", "debug-entry", "Entry id stamped on the sample event")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
