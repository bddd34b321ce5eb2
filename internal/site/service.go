package site

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/ScottHCollier/inntrac-app/internal"
)

// Repository defines the data access methods for sites
type Repository interface {
	Create(site *Site) error
	GetByID(id string) (*Site, error)
	GetAll() ([]*Site, error)
	Update(site *Site) error
	Exists(id string) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateSite(dto CreateSiteDTO) (*Site, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationFieldError("name", err.Error(), internal.ErrCodeValidationFailed)
	}

	site := &Site{
		ID:   uuid.NewString(),
		Name: dto.Name,
	}

	if err := s.repo.Create(site); err != nil {
		s.logger.Error("failed to create site", "error", err, "name", dto.Name)
		return nil, internal.NewInternalError("failed to create site", err)
	}

	s.logger.Info("site created", "site_id", site.ID, "name", site.Name)
	return site, nil
}

func (s *Service) GetSite(id string) (*Site, error) {
	site, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrSiteNotFound
	}
	return site, nil
}

func (s *Service) GetSites() ([]*Site, error) {
	sites, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list sites", "error", err)
		return nil, internal.NewInternalError("failed to list sites", err)
	}
	return sites, nil
}

func (s *Service) UpdateSite(id string, dto UpdateSiteDTO) (*Site, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationFieldError("name", err.Error(), internal.ErrCodeValidationFailed)
	}

	site, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrSiteNotFound
	}

	site.Name = dto.Name
	if err := s.repo.Update(site); err != nil {
		s.logger.Error("failed to update site", "error", err, "site_id", id)
		return nil, internal.NewInternalError("failed to update site", err)
	}

	return site, nil
}
