package shift

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ScottHCollier/inntrac-app/internal"
)

// Repository defines the data access methods for shifts
type Repository interface {
	Create(shift *Shift) error
	GetByID(id string) (*Shift, error)
	GetByUser(userID string, from, to time.Time) ([]*Shift, error)
	Update(shift *Shift) error
	Delete(id string) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateShift normalizes the submitted day and wall-clock times and persists
// the shift. The end-before-start check happens after overnight
// normalization, so a 22:00-04:00 shift is valid.
func (s *Service) CreateShift(dto CreateShiftDTO) (*Shift, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationFieldError("startTime", err.Error(), internal.ErrCodeValidationFailed)
	}

	date, err := dto.ParseDate()
	if err != nil {
		return nil, internal.NewValidationFieldError("date", "invalid date, expected yyyy-MM-dd", internal.ErrCodeInvalidDate)
	}

	st, et, err := NormalizeTimes(date, dto.Start, dto.End)
	if err != nil {
		return nil, internal.NewValidationFieldError("startTime", err.Error(), internal.ErrCodeInvalidTimeRange)
	}

	if !st.Before(et) {
		return nil, internal.NewValidationFieldError("startTime", "startTime must be before endTime", internal.ErrCodeInvalidTimeRange)
	}

	shift := &Shift{
		ID:        uuid.NewString(),
		UserID:    dto.UserID,
		GroupID:   dto.GroupID,
		SiteID:    dto.SiteID,
		StartTime: st,
		EndTime:   et,
		Pending:   dto.Pending,
	}

	if err := s.repo.Create(shift); err != nil {
		s.logger.Error("failed to create shift", "error", err, "user_id", dto.UserID)
		return nil, internal.NewInternalError("failed to create shift", err)
	}

	s.logger.Info("shift created",
		"shift_id", shift.ID,
		"user_id", shift.UserID,
		"start", shift.StartTime,
		"end", shift.EndTime)

	return shift, nil
}

func (s *Service) UpdateShift(id string, dto UpdateShiftDTO) (*Shift, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationFieldError("startTime", err.Error(), internal.ErrCodeValidationFailed)
	}

	shift, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrShiftNotFound
	}

	date, err := dto.ParseDate()
	if err != nil {
		return nil, internal.NewValidationFieldError("date", "invalid date, expected yyyy-MM-dd", internal.ErrCodeInvalidDate)
	}

	st, et, err := NormalizeTimes(date, dto.Start, dto.End)
	if err != nil {
		return nil, internal.NewValidationFieldError("startTime", err.Error(), internal.ErrCodeInvalidTimeRange)
	}

	if !st.Before(et) {
		return nil, internal.NewValidationFieldError("startTime", "startTime must be before endTime", internal.ErrCodeInvalidTimeRange)
	}

	shift.GroupID = dto.GroupID
	shift.StartTime = st
	shift.EndTime = et
	shift.Pending = dto.Pending

	if err := s.repo.Update(shift); err != nil {
		s.logger.Error("failed to update shift", "error", err, "shift_id", id)
		return nil, internal.NewInternalError("failed to update shift", err)
	}

	return shift, nil
}

func (s *Service) DeleteShift(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrShiftNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete shift", "error", err, "shift_id", id)
		return internal.NewInternalError("failed to delete shift", err)
	}

	s.logger.Info("shift deleted", "shift_id", id)
	return nil
}

func (s *Service) GetUserShifts(userID string, from, to time.Time) ([]*Shift, error) {
	shifts, err := s.repo.GetByUser(userID, from, to)
	if err != nil {
		s.logger.Error("failed to get user shifts", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get shifts", err)
	}
	return shifts, nil
}
