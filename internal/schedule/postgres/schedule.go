package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/ScottHCollier/inntrac-app/internal/schedule"
)

// ScheduleRepository implements the schedule.Repository interface using GORM
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) schedule.Repository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(s *schedule.Schedule) error {
	return r.db.Create(s).Error
}

func (r *ScheduleRepository) CreateBatch(schedules []*schedule.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}
	return r.db.Create(schedules).Error
}

func (r *ScheduleRepository) GetByID(id string) (*schedule.Schedule, error) {
	var s schedule.Schedule
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepository) GetInWindow(siteID string, from, to time.Time) ([]*schedule.Schedule, error) {
	var schedules []*schedule.Schedule
	q := r.db.Where("site_id = ?", siteID).
		Where("start_time >= ? AND start_time < ?", from, to)
	err := q.Order("start_time ASC").Find(&schedules).Error
	return schedules, err
}

func (r *ScheduleRepository) GetPendingTimeOff(siteID string) ([]*schedule.Schedule, error) {
	var schedules []*schedule.Schedule
	err := r.db.Where("site_id = ? AND type = ? AND status = ?", siteID, int(schedule.TypeTimeOff), true).
		Order("start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *ScheduleRepository) Update(s *schedule.Schedule) error {
	return r.db.Save(s).Error
}

func (r *ScheduleRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&schedule.Schedule{}).Error
}

// ListUsers projects the users attached to a site into grid rows. The m2m
// user_sites table carries site membership; default_group_id narrows by
// group when set.
func (r *ScheduleRepository) ListUsers(siteID, groupID, userID, searchTerm string) ([]*schedule.UserRow, error) {
	var rows []*schedule.UserRow

	q := r.db.Table("users").
		Select("users.id, users.first_name, users.surname, users.email, users.default_group_id").
		Joins("JOIN user_sites ON user_sites.user_id = users.id").
		Where("user_sites.site_id = ?", siteID)

	if groupID != "" {
		q = q.Where("users.default_group_id = ?", groupID)
	}
	if userID != "" {
		q = q.Where("users.id = ?", userID)
	}
	if searchTerm != "" {
		pattern := "%" + searchTerm + "%"
		q = q.Where("LOWER(users.first_name) LIKE LOWER(?) OR LOWER(users.surname) LIKE LOWER(?)", pattern, pattern)
	}

	err := q.Order("users.first_name ASC, users.surname ASC").Scan(&rows).Error
	return rows, err
}
