package schedule

import "time"

// Type is the schedule status code carried on the wire as an integer.
// Only the values below are observed in production data; 1 and 2 are not
// mapped anywhere and are passed through rather than guessed at.
type Type int

const (
	TypePending  Type = 0
	TypeTimeOff  Type = 3
	TypeAccepted Type = 4
)

// Known reports whether the code is one of the mapped values.
func (t Type) Known() bool {
	switch t {
	case TypePending, TypeTimeOff, TypeAccepted:
		return true
	}
	return false
}

func (t Type) String() string {
	switch t {
	case TypePending:
		return "pending"
	case TypeTimeOff:
		return "time_off"
	case TypeAccepted:
		return "accepted"
	}
	return "unknown"
}

// Schedule is a planned or requested interval for a user: planned hours or a
// time-off request, distinguished by Type.
type Schedule struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"column:user_id;not null;index"`
	SiteID    string    `json:"siteId" gorm:"column:site_id;not null;index"`
	GroupID   string    `json:"groupId" gorm:"column:group_id;not null"`
	StartTime time.Time `json:"startTime" gorm:"column:start_time;not null"`
	EndTime   time.Time `json:"endTime" gorm:"column:end_time;not null"`
	Status    bool      `json:"status" gorm:"not null;default:false"`
	Type      int       `json:"type" gorm:"not null;default:0"`
	Hours     float64   `json:"hours" gorm:"not null;default:0"`
}

func (Schedule) TableName() string {
	return "schedules"
}

// IsTimeOff reports whether this entry is a time-off request, accepted or not.
func (s *Schedule) IsTimeOff() bool {
	return Type(s.Type) == TypeTimeOff || Type(s.Type) == TypeAccepted
}

// UserRow is one row of the weekly grid: a user plus the schedules that
// intersect the requested window.
type UserRow struct {
	ID             string      `json:"id"`
	FirstName      string      `json:"firstName"`
	Surname        string      `json:"surname"`
	Email          string      `json:"email"`
	DefaultGroupID string      `json:"defaultGroupId"`
	Schedules      []*Schedule `json:"schedules"`
}
