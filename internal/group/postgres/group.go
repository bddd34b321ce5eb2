package postgres

import (
	"gorm.io/gorm"

	"github.com/ScottHCollier/inntrac-app/internal/group"
)

// GroupRepository implements the group.Repository interface using GORM
type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) group.Repository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(g *group.Group) error {
	return r.db.Create(g).Error
}

func (r *GroupRepository) GetByID(id string) (*group.Group, error) {
	var g group.Group
	if err := r.db.Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) GetBySite(siteID string) ([]*group.Group, error) {
	var groups []*group.Group
	err := r.db.Where("site_id = ?", siteID).Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) GetAll() ([]*group.Group, error) {
	var groups []*group.Group
	err := r.db.Order("name ASC").Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) Update(g *group.Group) error {
	return r.db.Save(g).Error
}

func (r *GroupRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&group.Group{}).Error
}
