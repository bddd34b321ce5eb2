package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ScottHCollier/inntrac-app/internal/email"
)

// EmailRepository implements the email.Repository interface using GORM
type EmailRepository struct {
	db *gorm.DB
}

func NewEmailRepository(db *gorm.DB) email.Repository {
	return &EmailRepository{db: db}
}

func (r *EmailRepository) Enqueue(e *email.Email) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.Status = email.StatusQueued
	return r.db.Create(e).Error
}

func (r *EmailRepository) NextBatch(limit int) ([]*email.Email, error) {
	var batch []*email.Email
	err := r.db.Where("status = ?", email.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&batch).Error
	return batch, err
}

func (r *EmailRepository) MarkSent(id string) error {
	return r.db.Model(&email.Email{}).
		Where("id = ?", id).
		Update("status", email.StatusSent).Error
}

func (r *EmailRepository) MarkFailed(id string) error {
	return r.db.Model(&email.Email{}).
		Where("id = ?", id).
		Update("status", email.StatusFailed).Error
}
