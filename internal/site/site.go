package site

import (
	"errors"
	"strings"
)

// Site is the top-level organizational tenant. Groups and users hang off a
// site; a user can belong to several.
type Site struct {
	ID   string `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
}

func (Site) TableName() string {
	return "sites"
}

type CreateSiteDTO struct {
	Name string `json:"name"`
}

func (dto CreateSiteDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

type UpdateSiteDTO struct {
	Name string `json:"name"`
}

func (dto UpdateSiteDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}
