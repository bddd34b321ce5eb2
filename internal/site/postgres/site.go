package postgres

import (
	"gorm.io/gorm"

	"github.com/ScottHCollier/inntrac-app/internal/site"
)

// SiteRepository implements the site.Repository interface using GORM
type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) site.Repository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) Create(s *site.Site) error {
	return r.db.Create(s).Error
}

func (r *SiteRepository) GetByID(id string) (*site.Site, error) {
	var s site.Site
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SiteRepository) GetAll() ([]*site.Site, error) {
	var sites []*site.Site
	err := r.db.Order("name ASC").Find(&sites).Error
	return sites, err
}

func (r *SiteRepository) Update(s *site.Site) error {
	return r.db.Save(s).Error
}

func (r *SiteRepository) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&site.Site{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
