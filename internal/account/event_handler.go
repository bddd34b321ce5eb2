package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ScottHCollier/inntrac-app/internal/core/events"
	"github.com/ScottHCollier/inntrac-app/internal/email"
)

// EventHandler turns domain events into queued emails for the mailer worker.
type EventHandler struct {
	repo   Repository
	emails email.Repository
	logger *slog.Logger
}

func NewEventHandler(repo Repository, emails email.Repository, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		repo:   repo,
		emails: emails,
		logger: logger,
	}
}

func (h *EventHandler) HandleTimeOffRequested(ctx context.Context, event events.Event) error {
	timeOffEvent, ok := event.(*events.TimeOffRequestedEvent)
	if !ok {
		h.logger.Error("invalid event type for time off handler", "event_type", event.EventType())
		return fmt.Errorf("expected TimeOffRequestedEvent, got %T", event)
	}

	user, err := h.repo.GetByID(timeOffEvent.UserID)
	if err != nil {
		return fmt.Errorf("load user %s for time off email: %w", timeOffEvent.UserID, err)
	}

	err = h.emails.Enqueue(&email.Email{
		From:     email.DefaultFrom,
		To:       user.Email,
		Template: email.TemplateTimeOff,
		Subject:  "Time off request received",
		Body:     fmt.Sprintf("Hi %s, your time off request has been received and is waiting for approval.", user.FirstName),
	})
	if err != nil {
		return fmt.Errorf("queue time off email for user %s: %w", user.ID, err)
	}

	h.logger.Info("time off email queued",
		"user_id", user.ID,
		"days", timeOffEvent.Days,
		"event_id", timeOffEvent.EventID())

	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeTimeOffRequested, h.HandleTimeOffRequested)

	h.logger.Info("account event handlers registered",
		"handlers", []string{events.EventTypeTimeOffRequested})
}
