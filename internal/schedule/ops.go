package schedule

import (
	"time"

	"github.com/google/uuid"
)

// ExpandTimeOffDays expands an inclusive date range into one calendar-day
// instant per day, from the start date through one day past the end date.
// The trailing extra day matches the behavior the rest of the system was
// built against; see the repository design notes before changing it.
func ExpandTimeOffDays(start, end time.Time) []time.Time {
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1)

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// BuildTimeOff materializes a time-off request into one schedule per day.
func BuildTimeOff(dto TimeOffDTO) []*Schedule {
	days := ExpandTimeOffDays(dto.StartTime, dto.EndTime)
	schedules := make([]*Schedule, 0, len(days))
	for _, day := range days {
		schedules = append(schedules, &Schedule{
			ID:        uuid.NewString(),
			UserID:    dto.UserID,
			SiteID:    dto.SiteID,
			GroupID:   dto.GroupID,
			StartTime: day,
			EndTime:   day,
			Status:    true,
			Type:      int(TypeTimeOff),
			Hours:     0,
		})
	}
	return schedules
}

// ShiftWeekForward copies a week's schedules exactly seven days forward.
// Everything but the id and the two instants is preserved. Deliberately not
// idempotent: repeating twice from the same base week stacks duplicates two
// weeks out.
func ShiftWeekForward(schedules []*Schedule) []*Schedule {
	shifted := make([]*Schedule, 0, len(schedules))
	for _, s := range schedules {
		shifted = append(shifted, &Schedule{
			ID:        uuid.NewString(),
			UserID:    s.UserID,
			SiteID:    s.SiteID,
			GroupID:   s.GroupID,
			StartTime: s.StartTime.AddDate(0, 0, 7),
			EndTime:   s.EndTime.AddDate(0, 0, 7),
			Status:    s.Status,
			Type:      s.Type,
			Hours:     s.Hours,
		})
	}
	return shifted
}

// IntervalHours is the worked span of a schedule in fractional hours.
func IntervalHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}
