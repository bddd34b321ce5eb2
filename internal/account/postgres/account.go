package postgres

import (
	"gorm.io/gorm"

	"github.com/ScottHCollier/inntrac-app/internal/account"
)

// AccountRepository implements the account.Repository interface using GORM
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) account.Repository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(user *account.User) error {
	return r.db.Create(user).Error
}

func (r *AccountRepository) GetByID(id string) (*account.User, error) {
	var user account.User
	err := r.db.Preload("Sites").Preload("Groups").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AccountRepository) GetByEmail(email string) (*account.User, error) {
	var user account.User
	err := r.db.Preload("Sites").Preload("Groups").
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AccountRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&account.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	return count > 0, err
}
