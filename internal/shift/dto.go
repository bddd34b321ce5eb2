package shift

import (
	"errors"
	"time"
)

// CreateShiftDTO carries a shift as the scheduler enters it: a calendar day
// plus wall-clock start and end times. The server owns normalization into
// instants.
type CreateShiftDTO struct {
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
	SiteID  string `json:"siteId"`
	Date    string `json:"date"` // yyyy-MM-dd
	Start   string `json:"start"`
	End     string `json:"end"`
	Pending bool   `json:"pending"`
}

func (dto CreateShiftDTO) Validate() error {
	if dto.UserID == "" {
		return errors.New("userId is required")
	}
	if dto.GroupID == "" {
		return errors.New("groupId is required")
	}
	if dto.SiteID == "" {
		return errors.New("siteId is required")
	}
	if dto.Date == "" {
		return errors.New("date is required")
	}
	if dto.Start == "" {
		return errors.New("start time is required")
	}
	if dto.End == "" {
		return errors.New("end time is required")
	}
	return nil
}

// ParseDate parses the DTO's calendar day.
func (dto CreateShiftDTO) ParseDate() (time.Time, error) {
	return time.Parse("2006-01-02", dto.Date)
}

type UpdateShiftDTO struct {
	GroupID string `json:"groupId"`
	Date    string `json:"date"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Pending bool   `json:"pending"`
}

func (dto UpdateShiftDTO) Validate() error {
	if dto.GroupID == "" {
		return errors.New("groupId is required")
	}
	if dto.Date == "" {
		return errors.New("date is required")
	}
	if dto.Start == "" {
		return errors.New("start time is required")
	}
	if dto.End == "" {
		return errors.New("end time is required")
	}
	return nil
}

func (dto UpdateShiftDTO) ParseDate() (time.Time, error) {
	return time.Parse("2006-01-02", dto.Date)
}
