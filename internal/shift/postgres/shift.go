package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/ScottHCollier/inntrac-app/internal/shift"
)

// ShiftRepository implements the shift.Repository interface using GORM
type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) shift.Repository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Create(s *shift.Shift) error {
	return r.db.Create(s).Error
}

func (r *ShiftRepository) GetByID(id string) (*shift.Shift, error) {
	var s shift.Shift
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShiftRepository) GetByUser(userID string, from, to time.Time) ([]*shift.Shift, error) {
	var shifts []*shift.Shift
	q := r.db.Where("user_id = ?", userID)
	if !from.IsZero() {
		q = q.Where("start_time >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("start_time < ?", to)
	}
	err := q.Order("start_time ASC").Find(&shifts).Error
	return shifts, err
}

func (r *ShiftRepository) Update(s *shift.Shift) error {
	return r.db.Save(s).Error
}

func (r *ShiftRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&shift.Shift{}).Error
}
