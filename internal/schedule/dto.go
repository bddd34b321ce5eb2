package schedule

import (
	"errors"
	"time"
)

// ScheduleItemDTO is the wire form of one schedule, used for single and bulk
// create/update operations alike.
type ScheduleItemDTO struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"userId"`
	SiteID    string    `json:"siteId"`
	GroupID   string    `json:"groupId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    bool      `json:"status"`
	Type      int       `json:"type"`
	Hours     float64   `json:"hours"`
}

func (dto ScheduleItemDTO) Validate() error {
	if dto.UserID == "" {
		return errors.New("userId is required")
	}
	if dto.SiteID == "" {
		return errors.New("siteId is required")
	}
	if dto.GroupID == "" {
		return errors.New("groupId is required")
	}
	if dto.StartTime.IsZero() {
		return errors.New("startTime is required")
	}
	if dto.EndTime.IsZero() {
		return errors.New("endTime is required")
	}
	if dto.EndTime.Before(dto.StartTime) {
		return errors.New("startTime must not be after endTime")
	}
	return nil
}

// TimeOffDTO requests time off over an inclusive date range.
type TimeOffDTO struct {
	UserID    string    `json:"userId"`
	SiteID    string    `json:"siteId"`
	GroupID   string    `json:"groupId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

func (dto TimeOffDTO) Validate() error {
	if dto.UserID == "" {
		return errors.New("userId is required")
	}
	if dto.SiteID == "" {
		return errors.New("siteId is required")
	}
	if dto.GroupID == "" {
		return errors.New("groupId is required")
	}
	if dto.StartTime.IsZero() || dto.EndTime.IsZero() {
		return errors.New("startTime and endTime are required")
	}
	if dto.StartTime.After(dto.EndTime) {
		return errors.New("startTime must be before or the same as endTime")
	}
	return nil
}

// WeekQuery filters the weekly grid.
type WeekQuery struct {
	WeekStart  time.Time
	WeekEnd    time.Time
	SiteID     string
	GroupID    string
	UserID     string
	SearchTerm string
}

func (q WeekQuery) Validate() error {
	if q.WeekStart.IsZero() || q.WeekEnd.IsZero() {
		return errors.New("weekStart and weekEnd are required")
	}
	if !q.WeekStart.Before(q.WeekEnd) {
		return errors.New("weekStart must be before weekEnd")
	}
	return nil
}
