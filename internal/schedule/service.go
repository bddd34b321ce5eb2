package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ScottHCollier/inntrac-app/internal"
	"github.com/ScottHCollier/inntrac-app/internal/core/events"
)

// Repository defines the data access methods for schedules
type Repository interface {
	Create(schedule *Schedule) error
	CreateBatch(schedules []*Schedule) error
	GetByID(id string) (*Schedule, error)
	GetInWindow(siteID string, from, to time.Time) ([]*Schedule, error)
	GetPendingTimeOff(siteID string) ([]*Schedule, error)
	Update(schedule *Schedule) error
	Delete(id string) error
	ListUsers(siteID, groupID, userID, searchTerm string) ([]*UserRow, error)
}

type Service struct {
	repo   Repository
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo Repository, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

func (s *Service) CreateSchedule(dto ScheduleItemDTO) (*Schedule, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationFieldError("startTime", err.Error(), internal.ErrCodeValidationFailed)
	}

	schedule := s.fromDTO(dto)
	schedule.ID = uuid.NewString()

	if err := s.repo.Create(schedule); err != nil {
		s.logger.Error("failed to create schedule", "error", err, "user_id", dto.UserID)
		return nil, internal.NewInternalError("failed to create schedule", err)
	}

	s.logger.Info("schedule created",
		"schedule_id", schedule.ID,
		"user_id", schedule.UserID,
		"type", Type(schedule.Type).String())

	return schedule, nil
}

// BulkCreate persists a batch of schedules in one call. The repeat-week
// operation lands here: N inputs always become N rows, with no conflict or
// duplicate checking.
func (s *Service) BulkCreate(dtos []ScheduleItemDTO) ([]*Schedule, error) {
	if len(dtos) == 0 {
		return nil, internal.NewValidationError("no schedules submitted", internal.ErrCodeValidationFailed)
	}

	schedules := make([]*Schedule, 0, len(dtos))
	for _, dto := range dtos {
		if err := dto.Validate(); err != nil {
			return nil, internal.NewValidationFieldError("startTime", err.Error(), internal.ErrCodeValidationFailed)
		}
		schedule := s.fromDTO(dto)
		schedule.ID = uuid.NewString()
		schedules = append(schedules, schedule)
	}

	if err := s.repo.CreateBatch(schedules); err != nil {
		s.logger.Error("failed to bulk create schedules", "error", err, "count", len(schedules))
		return nil, internal.NewInternalError("failed to create schedules", err)
	}

	s.logger.Info("schedules bulk created", "count", len(schedules))
	return schedules, nil
}

// BulkUpdate applies a batch of full schedule updates in one call. The
// notification accept-all flow submits every pending time-off entry with
// Type set to accepted.
func (s *Service) BulkUpdate(dtos []ScheduleItemDTO) ([]*Schedule, error) {
	if len(dtos) == 0 {
		return nil, internal.NewValidationError("no schedules submitted", internal.ErrCodeValidationFailed)
	}

	updated := make([]*Schedule, 0, len(dtos))
	for _, dto := range dtos {
		if dto.ID == "" {
			return nil, internal.NewValidationFieldError("id", "id is required for updates", internal.ErrCodeValidationFailed)
		}
		if err := dto.Validate(); err != nil {
			return nil, internal.NewValidationFieldError("startTime", err.Error(), internal.ErrCodeValidationFailed)
		}

		schedule, err := s.repo.GetByID(dto.ID)
		if err != nil {
			return nil, internal.ErrScheduleNotFound
		}

		schedule.UserID = dto.UserID
		schedule.SiteID = dto.SiteID
		schedule.GroupID = dto.GroupID
		schedule.StartTime = dto.StartTime
		schedule.EndTime = dto.EndTime
		schedule.Status = dto.Status
		schedule.Type = dto.Type
		schedule.Hours = dto.Hours

		if err := s.repo.Update(schedule); err != nil {
			s.logger.Error("failed to update schedule", "error", err, "schedule_id", dto.ID)
			return nil, internal.NewInternalError("failed to update schedule", err)
		}
		updated = append(updated, schedule)
	}

	s.logger.Info("schedules bulk updated", "count", len(updated))
	return updated, nil
}

func (s *Service) UpdateSchedule(id string, dto ScheduleItemDTO) (*Schedule, error) {
	dto.ID = id
	updated, err := s.BulkUpdate([]ScheduleItemDTO{dto})
	if err != nil {
		return nil, err
	}
	return updated[0], nil
}

func (s *Service) DeleteSchedule(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrScheduleNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete schedule", "error", err, "schedule_id", id)
		return internal.NewInternalError("failed to delete schedule", err)
	}

	s.logger.Info("schedule deleted", "schedule_id", id)
	return nil
}

// RequestTimeOff expands the inclusive date range into per-day time-off
// schedules and persists them as one batch.
func (s *Service) RequestTimeOff(ctx context.Context, dto TimeOffDTO) ([]*Schedule, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationFieldError("startTime", err.Error(), internal.ErrCodeValidationFailed)
	}

	schedules := BuildTimeOff(dto)

	if err := s.repo.CreateBatch(schedules); err != nil {
		s.logger.Error("failed to create time off", "error", err, "user_id", dto.UserID)
		return nil, internal.NewInternalError("failed to request time off", err)
	}

	s.logger.Info("time off requested",
		"user_id", dto.UserID,
		"days", len(schedules),
		"from", dto.StartTime,
		"to", dto.EndTime)

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewTimeOffRequested(dto.UserID, dto.SiteID, len(schedules)))
	}

	return schedules, nil
}

// WeekRows builds the weekly grid: one row per matching user carrying the
// schedules that intersect the window.
func (s *Service) WeekRows(q WeekQuery) ([]*UserRow, error) {
	if err := q.Validate(); err != nil {
		return nil, internal.NewValidationFieldError("weekStart", err.Error(), internal.ErrCodeValidationFailed)
	}

	rows, err := s.repo.ListUsers(q.SiteID, q.GroupID, q.UserID, q.SearchTerm)
	if err != nil {
		s.logger.Error("failed to list users for week", "error", err)
		return nil, internal.NewInternalError("failed to load schedule rows", err)
	}

	schedules, err := s.repo.GetInWindow(q.SiteID, q.WeekStart, q.WeekEnd)
	if err != nil {
		s.logger.Error("failed to load window schedules", "error", err)
		return nil, internal.NewInternalError("failed to load schedule rows", err)
	}

	byUser := make(map[string][]*Schedule, len(rows))
	for _, sched := range schedules {
		byUser[sched.UserID] = append(byUser[sched.UserID], sched)
	}

	for _, row := range rows {
		row.Schedules = byUser[row.ID]
		if row.Schedules == nil {
			row.Schedules = []*Schedule{}
		}
	}

	return rows, nil
}

// PendingTimeOff groups a site's unapproved time-off requests per user, for
// the notifications panel.
func (s *Service) PendingTimeOff(siteID string) ([]*UserRow, error) {
	pending, err := s.repo.GetPendingTimeOff(siteID)
	if err != nil {
		s.logger.Error("failed to load pending time off", "error", err, "site_id", siteID)
		return nil, internal.NewInternalError("failed to load pending time off", err)
	}

	rows, err := s.repo.ListUsers(siteID, "", "", "")
	if err != nil {
		return nil, internal.NewInternalError("failed to load pending time off", err)
	}

	byUser := make(map[string][]*Schedule)
	for _, sched := range pending {
		byUser[sched.UserID] = append(byUser[sched.UserID], sched)
	}

	var result []*UserRow
	for _, row := range rows {
		if schedules, ok := byUser[row.ID]; ok {
			row.Schedules = schedules
			result = append(result, row)
		}
	}

	return result, nil
}

func (s *Service) fromDTO(dto ScheduleItemDTO) *Schedule {
	hours := dto.Hours
	if hours == 0 && Type(dto.Type) != TypeTimeOff {
		hours = IntervalHours(dto.StartTime, dto.EndTime)
	}
	return &Schedule{
		ID:        dto.ID,
		UserID:    dto.UserID,
		SiteID:    dto.SiteID,
		GroupID:   dto.GroupID,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		Status:    dto.Status,
		Type:      dto.Type,
		Hours:     hours,
	}
}
