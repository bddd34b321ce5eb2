package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserCreated      = "user.created"
	EventTypeTimeOffRequested = "timeoff.requested"
)

type UserCreatedEvent struct {
	BaseEvent
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	SiteID    string `json:"site_id"`
}

func NewUserCreated(userID, email, firstName, siteID string) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":    userID,
				"email":      email,
				"first_name": firstName,
				"site_id":    siteID,
			},
		},
		UserID:    userID,
		Email:     email,
		FirstName: firstName,
		SiteID:    siteID,
	}
}

type TimeOffRequestedEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
	SiteID string `json:"site_id"`
	Days   int    `json:"days"`
}

func NewTimeOffRequested(userID, siteID string, days int) *TimeOffRequestedEvent {
	return &TimeOffRequestedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTimeOffRequested,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
				"site_id": siteID,
				"days":    days,
			},
		},
		UserID: userID,
		SiteID: siteID,
		Days:   days,
	}
}
