package group

import (
	"errors"
	"strings"
)

// Group is a sub-team within a site.
type Group struct {
	ID     string `json:"id" gorm:"primaryKey"`
	SiteID string `json:"siteId" gorm:"column:site_id;not null;index"`
	Name   string `json:"name" gorm:"not null"`
}

func (Group) TableName() string {
	return "groups"
}

type CreateGroupDTO struct {
	SiteID string `json:"siteId"`
	Name   string `json:"name"`
}

func (dto CreateGroupDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return errors.New("name is required")
	}
	if dto.SiteID == "" {
		return errors.New("siteId is required")
	}
	return nil
}

type UpdateGroupDTO struct {
	Name string `json:"name"`
}

func (dto UpdateGroupDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}
