package account

import (
	"time"

	"github.com/ScottHCollier/inntrac-app/internal/group"
	"github.com/ScottHCollier/inntrac-app/internal/site"
)

// User is the stored account record. Users are never hard-deleted; removing
// someone from a site only detaches the membership rows.
type User struct {
	ID             string    `json:"id" gorm:"primaryKey;column:id"`
	Email          string    `json:"email" gorm:"column:email;uniqueIndex"`
	FirstName      string    `json:"firstName" gorm:"column:first_name"`
	Surname        string    `json:"surname" gorm:"column:surname"`
	PasswordHash   string    `json:"-" gorm:"column:password_hash"`
	IsAdmin        bool      `json:"isAdmin" gorm:"column:is_admin"`
	DefaultSiteID  string    `json:"defaultSiteId" gorm:"column:default_site_id"`
	DefaultGroupID string    `json:"defaultGroupId" gorm:"column:default_group_id"`
	CreatedAt      time.Time `json:"-" gorm:"column:created_at"`

	Sites  []site.Site   `json:"sites,omitempty" gorm:"many2many:user_sites;"`
	Groups []group.Group `json:"groups,omitempty" gorm:"many2many:user_groups;"`
}

func (User) TableName() string {
	return "users"
}
