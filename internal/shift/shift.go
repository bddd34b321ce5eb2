package shift

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Shift is a concrete assigned interval of work for a user.
type Shift struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"column:user_id;not null;index"`
	GroupID   string    `json:"groupId" gorm:"column:group_id;not null"`
	SiteID    string    `json:"siteId" gorm:"column:site_id;not null;index"`
	StartTime time.Time `json:"startTime" gorm:"column:start_time;not null"`
	EndTime   time.Time `json:"endTime" gorm:"column:end_time;not null"`
	Pending   bool      `json:"pending" gorm:"not null;default:false"`
}

func (Shift) TableName() string {
	return "shifts"
}

// overnightHourThreshold is the end-of-day cutoff for overnight shifts: an
// end time before 09:00 always belongs to the morning after the shift's
// date, never the same day. A 22:00-04:00 bar shift ends at 04:00 tomorrow.
const overnightHourThreshold = 9

// NormalizeTimes combines a calendar date with "HH:mm" start and end
// time-of-day strings into concrete instants. End hours below the overnight
// threshold roll to the following day unconditionally, regardless of the
// start hour.
func NormalizeTimes(date time.Time, start, end string) (time.Time, time.Time, error) {
	startHour, startMin, err := parseClock(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	endHour, endMin, err := parseClock(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	st := day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute)

	endDay := day
	if endHour < overnightHourThreshold {
		endDay = day.AddDate(0, 0, 1)
	}
	et := endDay.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute)

	return st, et, nil
}

func parseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:mm", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}
