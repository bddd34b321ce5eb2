package apiclient

import (
	"context"
	"time"

	"github.com/ScottHCollier/inntrac-app/internal/schedule"
)

// Filters narrow the weekly grid.
type Filters struct {
	SiteID     string
	GroupID    string
	UserID     string
	SearchTerm string
}

// WeekView holds the calendar screen state: the anchor Monday, the active
// filters and the rows last fetched. All mutation happens through its
// methods so the anchor can never drift off a Monday.
type WeekView struct {
	session *Session
	monday  time.Time
	filters Filters
	rows    []*schedule.UserRow
}

func NewWeekView(session *Session, anchor time.Time, filters Filters) *WeekView {
	return &WeekView{
		session: session,
		monday:  schedule.WeekStart(anchor),
		filters: filters,
	}
}

func (v *WeekView) Monday() time.Time {
	return v.monday
}

// Days returns the seven days of the current week, Monday first.
func (v *WeekView) Days() [7]time.Time {
	return schedule.WeekDays(v.monday)
}

// Label renders the header text for the current week.
func (v *WeekView) Label() string {
	return schedule.WeekLabel(v.monday)
}

func (v *WeekView) Rows() []*schedule.UserRow {
	return v.rows
}

func (v *WeekView) SetFilters(filters Filters) {
	v.filters = filters
}

// Refresh fetches the grid for the current week and filters.
func (v *WeekView) Refresh(ctx context.Context) error {
	rows, err := v.session.Client().WeekSchedules(ctx, v.query())
	if err != nil {
		return err
	}
	v.rows = rows
	return nil
}

// Next advances one week and refreshes.
func (v *WeekView) Next(ctx context.Context) error {
	v.monday = schedule.Navigate(v.monday, schedule.DirectionNext)
	return v.Refresh(ctx)
}

// Previous steps back one week and refreshes.
func (v *WeekView) Previous(ctx context.Context) error {
	v.monday = schedule.Navigate(v.monday, schedule.DirectionPrevious)
	return v.Refresh(ctx)
}

// RepeatWeek copies every schedule in the current week forward seven days,
// submits the copies as a bulk create, then advances the view onto the new
// week. Running it twice doubles the rows on the target week.
func (v *WeekView) RepeatWeek(ctx context.Context) error {
	var current []*schedule.Schedule
	for _, row := range v.rows {
		current = append(current, row.Schedules...)
	}

	if len(current) > 0 {
		shifted := schedule.ShiftWeekForward(current)

		items := make([]schedule.ScheduleItemDTO, 0, len(shifted))
		for _, s := range shifted {
			items = append(items, schedule.ScheduleItemDTO{
				ID:        s.ID,
				UserID:    s.UserID,
				SiteID:    s.SiteID,
				GroupID:   s.GroupID,
				StartTime: s.StartTime,
				EndTime:   s.EndTime,
				Status:    s.Status,
				Type:      s.Type,
				Hours:     s.Hours,
			})
		}

		if _, err := v.session.Client().BulkCreateSchedules(ctx, items); err != nil {
			return err
		}
	}

	return v.Next(ctx)
}

// AcceptAllTimeOff approves every pending time-off schedule in the rows
// passed in, marking them accepted in one bulk update.
func (v *WeekView) AcceptAllTimeOff(ctx context.Context, pending []*schedule.UserRow) error {
	var items []schedule.ScheduleItemDTO
	for _, row := range pending {
		for _, s := range row.Schedules {
			items = append(items, schedule.ScheduleItemDTO{
				ID:        s.ID,
				UserID:    s.UserID,
				SiteID:    s.SiteID,
				GroupID:   s.GroupID,
				StartTime: s.StartTime,
				EndTime:   s.EndTime,
				Status:    s.Status,
				Type:      int(schedule.TypeAccepted),
				Hours:     s.Hours,
			})
		}
	}

	if len(items) == 0 {
		return nil
	}

	_, err := v.session.Client().BulkUpdateSchedules(ctx, items)
	return err
}

// RejectAllTimeOff is accepted by the server but changes nothing yet.
func (v *WeekView) RejectAllTimeOff(ctx context.Context, pending []*schedule.UserRow) error {
	return nil
}

func (v *WeekView) query() schedule.WeekQuery {
	return schedule.WeekQuery{
		WeekStart:  v.monday,
		WeekEnd:    v.monday.AddDate(0, 0, 7),
		SiteID:     v.filters.SiteID,
		GroupID:    v.filters.GroupID,
		UserID:     v.filters.UserID,
		SearchTerm: v.filters.SearchTerm,
	}
}
