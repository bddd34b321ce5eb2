package schedule

import (
	"fmt"
	"time"
)

// Direction moves the visible week window.
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

// WeekStart returns Monday 00:00 of the ISO week containing t, in t's
// location. Idempotent: WeekStart(WeekStart(t)) == WeekStart(t).
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// Weekday is Sunday=0; shift so Monday=0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Navigate moves a Monday one week forward or back.
func Navigate(monday time.Time, dir Direction) time.Time {
	if dir == DirectionPrevious {
		return monday.AddDate(0, 0, -7)
	}
	return monday.AddDate(0, 0, 7)
}

// WeekDays returns the seven day instants of the grid, Monday first.
func WeekDays(monday time.Time) [7]time.Time {
	var days [7]time.Time
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// WeekLabel renders the human label for the week starting at monday,
// e.g. "2nd - 8th Sep" or "30th Sep - 6th Oct". The month appears on the
// start day only when the week spans two months.
func WeekLabel(monday time.Time) string {
	endDay := monday.AddDate(0, 0, 6)

	start := ordinal(monday.Day())
	if monday.Month() != endDay.Month() || monday.Year() != endDay.Year() {
		start = fmt.Sprintf("%s %s", start, monday.Format("Jan"))
	}
	end := fmt.Sprintf("%s %s", ordinal(endDay.Day()), endDay.Format("Jan"))

	return fmt.Sprintf("%s - %s", start, end)
}

func ordinal(day int) string {
	suffix := "th"
	switch {
	case day%100 >= 11 && day%100 <= 13:
		// 11th, 12th, 13th
	case day%10 == 1:
		suffix = "st"
	case day%10 == 2:
		suffix = "nd"
	case day%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", day, suffix)
}
