package service

import (
	"context"
	"strings"

	"accessdesk/internal/models"
	"accessdesk/internal/observability"
	"accessdesk/internal/repository"
	"accessdesk/internal/validation"
)

// SoftwareService manages the software catalog. Entries are soft-deactivated,
// never removed, so historical access requests keep a valid target.
type SoftwareService struct {
	softwareRepo repository.SoftwareRepository
}

// NewSoftwareService returns a SoftwareService bound to the given repository.
func NewSoftwareService(softwareRepo repository.SoftwareRepository) *SoftwareService {
	return &SoftwareService{softwareRepo: softwareRepo}
}

// SoftwareSpec carries the writable fields of a catalog entry.
type SoftwareSpec struct {
	Name        string
	Description string
	Version     string
	IsActive    *bool
}

func (spec *SoftwareSpec) normalize() {
	spec.Name = strings.TrimSpace(spec.Name)
	spec.Description = strings.TrimSpace(spec.Description)
	spec.Version = strings.TrimSpace(spec.Version)
}

// ListCatalog returns catalog entries ordered by name. Ordinary consumption
// filters to active entries; includeInactive exposes the full catalog for
// administration.
func (s *SoftwareService) ListCatalog(ctx context.Context, includeInactive bool) ([]models.Software, error) {
	if includeInactive {
		return s.softwareRepo.List(ctx)
	}
	return s.softwareRepo.ListActive(ctx)
}

// Create adds a new catalog entry, active by default.
func (s *SoftwareService) Create(ctx context.Context, spec SoftwareSpec) (*models.Software, error) {
	spec.normalize()
	if err := validation.ValidateSoftwareSpec(spec.Name, spec.Description, spec.Version); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	software := &models.Software{
		Name:        spec.Name,
		Description: spec.Description,
		Version:     spec.Version,
		IsActive:    true,
	}
	if spec.IsActive != nil {
		software.IsActive = *spec.IsActive
	}

	if err := s.softwareRepo.Create(ctx, software); err != nil {
		return nil, err
	}

	observability.CatalogMutations.WithLabelValues("create").Inc()
	return software, nil
}

// Update replaces the writable fields of an existing catalog entry.
func (s *SoftwareService) Update(ctx context.Context, id uint, spec SoftwareSpec) (*models.Software, error) {
	spec.normalize()
	if err := validation.ValidateSoftwareSpec(spec.Name, spec.Description, spec.Version); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	software, err := s.softwareRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	software.Name = spec.Name
	software.Description = spec.Description
	software.Version = spec.Version
	if spec.IsActive != nil {
		software.IsActive = *spec.IsActive
	}

	if err := s.softwareRepo.Update(ctx, software); err != nil {
		return nil, err
	}

	observability.CatalogMutations.WithLabelValues("update").Inc()
	return software, nil
}

// Deactivate clears the active flag on a catalog entry. The row itself stays
// so existing requests keep their reference.
func (s *SoftwareService) Deactivate(ctx context.Context, id uint) error {
	software, err := s.softwareRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	software.IsActive = false
	if err := s.softwareRepo.Update(ctx, software); err != nil {
		return err
	}

	observability.CatalogMutations.WithLabelValues("deactivate").Inc()
	return nil
}
