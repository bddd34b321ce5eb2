package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ScottHCollier/inntrac-app/internal/core/events"
	"github.com/ScottHCollier/inntrac-app/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus commands",
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event and observe it on the bus",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var eventData string

// publishTestEvent wires a logging subscriber onto a fresh bus, publishes
// one event of the given type and waits for delivery. Useful for checking
// subscriber wiring without a database.
func publishTestEvent(eventType string) {
	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	bus := events.NewEventBus(log)
	bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		log.Info("received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	ev := events.BaseEvent{
		ID:        fmt.Sprintf("cli-%d", time.Now().Unix()),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": eventData,
			"source":  "cli",
		},
	}

	ctx := context.Background()
	if err := bus.Publish(ctx, ev); err != nil {
		log.Error("failed to publish event", "error", err)
		return
	}

	drainCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := bus.Drain(drainCtx); err != nil {
		log.Error("event delivery timed out", "error", err)
		return
	}

	log.Info("event delivered", "event_id", ev.ID)
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event payload message")

	eventCmd.AddCommand(publishEventCmd)
	rootCmd.AddCommand(eventCmd)
}
