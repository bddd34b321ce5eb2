package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ScottHCollier/inntrac-app/internal"
	"github.com/ScottHCollier/inntrac-app/internal/core/events"
	"github.com/ScottHCollier/inntrac-app/internal/email"
	"github.com/ScottHCollier/inntrac-app/internal/group"
	"github.com/ScottHCollier/inntrac-app/internal/shift"
	"github.com/ScottHCollier/inntrac-app/internal/site"
)

// Repository defines the data access methods for user accounts
type Repository interface {
	Create(user *User) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	EmailExists(email string) (bool, error)
}

type SiteChecker interface {
	GetByID(id string) (*site.Site, error)
}

type GroupChecker interface {
	GetByID(id string) (*group.Group, error)
}

type ShiftProvider interface {
	GetByUser(userID string, from, to time.Time) ([]*shift.Shift, error)
}

// TokenIssuer issues the tokens embedded in account projections and welcome
// emails.
type TokenIssuer interface {
	GenerateAccessToken(userID, email string) (token string, expiresAt time.Time, err error)
	GenerateInviteToken(email string) (token string, err error)
}

type Service struct {
	repo    Repository
	sites   SiteChecker
	groups  GroupChecker
	shifts  ShiftProvider
	emails  email.Repository
	tokens  TokenIssuer
	baseURL string
	bus     *events.EventBus
	logger  *slog.Logger
}

func NewService(
	repo Repository,
	sites SiteChecker,
	groups GroupChecker,
	shifts ShiftProvider,
	emails email.Repository,
	tokens TokenIssuer,
	baseURL string,
	bus *events.EventBus,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:    repo,
		sites:   sites,
		groups:  groups,
		shifts:  shifts,
		emails:  emails,
		tokens:  tokens,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		bus:     bus,
		logger:  logger,
	}
}

// AddUser creates an invited account with no password and queues the welcome
// email carrying the invite token.
func (s *Service) AddUser(ctx context.Context, dto AddUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	siteRecord, err := s.sites.GetByID(dto.SiteID)
	if err != nil {
		return nil, internal.NewValidationFieldError("siteId", "site does not exist", internal.ErrCodeInvalidSite)
	}

	groupRecord, err := s.groups.GetByID(dto.GroupID)
	if err != nil {
		return nil, internal.NewValidationFieldError("groupId", "group does not exist", internal.ErrCodeInvalidGroup)
	}

	taken, err := s.repo.EmailExists(dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to add user", err)
	}
	if taken {
		return nil, internal.NewValidationFieldError("email", "email is already in use", internal.ErrCodeEmailTaken)
	}

	user := &User{
		ID:             uuid.NewString(),
		Email:          dto.Email,
		FirstName:      dto.FirstName,
		Surname:        dto.Surname,
		IsAdmin:        dto.IsAdmin,
		DefaultSiteID:  siteRecord.ID,
		DefaultGroupID: groupRecord.ID,
		Sites:          []site.Site{*siteRecord},
		Groups:         []group.Group{*groupRecord},
	}

	if err := s.repo.Create(user); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to add user", err)
	}

	if err := s.queueWelcomeEmail(user); err != nil {
		// The account exists either way; delivery failures surface in the
		// mailer worker logs.
		s.logger.Error("failed to queue welcome email", "error", err, "user_id", user.ID)
	}

	s.logger.Info("user added", "user_id", user.ID, "site_id", siteRecord.ID)

	if s.bus != nil {
		s.bus.Publish(ctx, events.NewUserCreated(user.ID, user.Email, user.FirstName, siteRecord.ID))
	}

	return user, nil
}

// Projection builds the account view for a signed-in user, issuing a fresh
// token alongside the user's sites, groups and shifts.
func (s *Service) Projection(userID string) (*AccountDTO, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	token, _, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	shifts, err := s.shifts.GetByUser(user.ID, time.Time{}, time.Time{})
	if err != nil {
		s.logger.Error("failed to load user shifts", "error", err, "user_id", user.ID)
		shifts = []*shift.Shift{}
	}

	return &AccountDTO{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		Surname:        user.Surname,
		IsAdmin:        user.IsAdmin,
		Token:          token,
		DefaultSiteID:  user.DefaultSiteID,
		DefaultGroupID: user.DefaultGroupID,
		Sites:          user.Sites,
		Groups:         user.Groups,
		Shifts:         shifts,
	}, nil
}

func (s *Service) queueWelcomeEmail(user *User) error {
	token, err := s.tokens.GenerateInviteToken(user.Email)
	if err != nil {
		return err
	}

	// Invite tokens are base64url encoded, no escaping needed.
	body := token
	if s.baseURL != "" {
		body = fmt.Sprintf("%s/setPassword?token=%s", s.baseURL, token)
	}

	return s.emails.Enqueue(&email.Email{
		From:     email.DefaultFrom,
		To:       user.Email,
		Template: email.TemplateWelcome,
		Subject:  "Welcome to Inntrac",
		Body:     body,
	})
}
