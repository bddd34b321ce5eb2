package postgres

import (
	"gorm.io/gorm"

	"github.com/ScottHCollier/inntrac-app/internal/auth"
)

// UserRepository implements the auth.UserRepository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) auth.UserRepository {
	return &UserRepository{db: db}
}

type credentialsRow struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

func (r *UserRepository) GetCredentialsByEmail(email string) (*auth.Credentials, error) {
	var row credentialsRow
	err := r.db.Table("users").
		Select("id, email, password_hash, is_admin").
		Where("LOWER(email) = LOWER(?)", email).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return row.toCredentials(), nil
}

func (r *UserRepository) GetCredentialsByID(userID string) (*auth.Credentials, error) {
	var row credentialsRow
	err := r.db.Table("users").
		Select("id, email, password_hash, is_admin").
		Where("id = ?", userID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return row.toCredentials(), nil
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Table("users").
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) CreateUser(id, email, passwordHash string) error {
	return r.db.Table("users").Create(map[string]interface{}{
		"id":            id,
		"email":         email,
		"password_hash": passwordHash,
		"is_admin":      false,
	}).Error
}

func (r *UserRepository) SetPasswordHash(userID, passwordHash string) error {
	return r.db.Table("users").
		Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}

func (row credentialsRow) toCredentials() *auth.Credentials {
	return &auth.Credentials{
		UserID:       row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		IsAdmin:      row.IsAdmin,
	}
}
