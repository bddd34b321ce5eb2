package group

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/ScottHCollier/inntrac-app/internal"
)

// Repository defines the data access methods for groups
type Repository interface {
	Create(group *Group) error
	GetByID(id string) (*Group, error)
	GetBySite(siteID string) ([]*Group, error)
	GetAll() ([]*Group, error)
	Update(group *Group) error
	Delete(id string) error
}

// SiteChecker resolves whether a site exists; satisfied by the site repository.
type SiteChecker interface {
	Exists(siteID string) (bool, error)
}

type Service struct {
	repo   Repository
	sites  SiteChecker
	logger *slog.Logger
}

func NewService(repo Repository, sites SiteChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		sites:  sites,
		logger: logger,
	}
}

func (s *Service) CreateGroup(dto CreateGroupDTO) (*Group, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationFieldError("name", err.Error(), internal.ErrCodeValidationFailed)
	}

	ok, err := s.sites.Exists(dto.SiteID)
	if err != nil {
		return nil, internal.NewInternalError("failed to resolve site", err)
	}
	if !ok {
		return nil, internal.NewValidationFieldError("siteId", "Invalid site", internal.ErrCodeInvalidSite)
	}

	group := &Group{
		ID:     uuid.NewString(),
		SiteID: dto.SiteID,
		Name:   dto.Name,
	}

	if err := s.repo.Create(group); err != nil {
		s.logger.Error("failed to create group", "error", err, "site_id", dto.SiteID)
		return nil, internal.NewInternalError("failed to create group", err)
	}

	s.logger.Info("group created", "group_id", group.ID, "site_id", group.SiteID)
	return group, nil
}

func (s *Service) GetGroup(id string) (*Group, error) {
	group, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrGroupNotFound
	}
	return group, nil
}

func (s *Service) GetGroups(siteID string) ([]*Group, error) {
	var (
		groups []*Group
		err    error
	)
	if siteID != "" {
		groups, err = s.repo.GetBySite(siteID)
	} else {
		groups, err = s.repo.GetAll()
	}
	if err != nil {
		s.logger.Error("failed to list groups", "error", err, "site_id", siteID)
		return nil, internal.NewInternalError("failed to list groups", err)
	}
	return groups, nil
}

func (s *Service) UpdateGroup(id string, dto UpdateGroupDTO) (*Group, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationFieldError("name", err.Error(), internal.ErrCodeValidationFailed)
	}

	group, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrGroupNotFound
	}

	group.Name = dto.Name
	if err := s.repo.Update(group); err != nil {
		s.logger.Error("failed to update group", "error", err, "group_id", id)
		return nil, internal.NewInternalError("failed to update group", err)
	}

	return group, nil
}

func (s *Service) DeleteGroup(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrGroupNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete group", "error", err, "group_id", id)
		return internal.NewInternalError("failed to delete group", err)
	}
	return nil
}
