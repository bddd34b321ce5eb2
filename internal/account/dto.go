package account

import (
	"strings"

	"github.com/ScottHCollier/inntrac-app/internal"
	"github.com/ScottHCollier/inntrac-app/internal/group"
	"github.com/ScottHCollier/inntrac-app/internal/shift"
	"github.com/ScottHCollier/inntrac-app/internal/site"
)

// AccountDTO is the signed-in user projection the client hydrates its
// session from: the user, a fresh token, and everything the schedule screens
// need up front.
type AccountDTO struct {
	ID             string         `json:"id"`
	Email          string         `json:"email"`
	FirstName      string         `json:"firstName"`
	Surname        string         `json:"surname"`
	IsAdmin        bool           `json:"isAdmin"`
	Token          string         `json:"token"`
	DefaultSiteID  string         `json:"defaultSiteId"`
	DefaultGroupID string         `json:"defaultGroupId"`
	Sites          []site.Site    `json:"sites"`
	Groups         []group.Group  `json:"groups"`
	Shifts         []*shift.Shift `json:"shifts"`
}

// AddUserDTO is the admin add-user request. The invited user has no password
// until they follow the welcome email.
type AddUserDTO struct {
	FirstName string `json:"firstName"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	SiteID    string `json:"siteId"`
	GroupID   string `json:"groupId"`
	IsAdmin   bool   `json:"isAdmin"`
}

func (d AddUserDTO) Validate() error {
	var errs []internal.ValidationError
	if d.FirstName == "" {
		errs = append(errs, internal.ValidationError{
			Field: "firstName", Message: "first name is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Surname == "" {
		errs = append(errs, internal.ValidationError{
			Field: "surname", Message: "surname is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if !strings.Contains(d.Email, "@") {
		errs = append(errs, internal.ValidationError{
			Field: "email", Message: "a valid email is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.SiteID == "" {
		errs = append(errs, internal.ValidationError{
			Field: "siteId", Message: "siteId is required", Code: string(internal.ErrCodeInvalidSite),
		})
	}
	if d.GroupID == "" {
		errs = append(errs, internal.ValidationError{
			Field: "groupId", Message: "groupId is required", Code: string(internal.ErrCodeInvalidGroup),
		})
	}
	if len(errs) == 0 {
		return nil
	}
	return internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
		WithDetails(internal.ValidationErrors{Errors: errs})
}
