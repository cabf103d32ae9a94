package repository

import (
	"context"
	"errors"

	"accessdesk/internal/cache"
	"accessdesk/internal/models"

	"gorm.io/gorm"
)

// SoftwareRepository defines persistence operations for the software catalog.
type SoftwareRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Software, error)
	ListActive(ctx context.Context) ([]models.Software, error)
	List(ctx context.Context) ([]models.Software, error)
	Create(ctx context.Context, software *models.Software) error
	Update(ctx context.Context, software *models.Software) error
}

type softwareRepository struct {
	db *gorm.DB
}

// NewSoftwareRepository returns a new SoftwareRepository implementation.
func NewSoftwareRepository(db *gorm.DB) SoftwareRepository {
	return &softwareRepository{db: db}
}

func (r *softwareRepository) GetByID(ctx context.Context, id uint) (*models.Software, error) {
	var software models.Software
	if err := r.db.WithContext(ctx).First(&software, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Software", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &software, nil
}

// ListActive returns active catalog entries ordered by name. The result is
// cache-aside in Redis; any catalog mutation invalidates it.
func (r *softwareRepository) ListActive(ctx context.Context) ([]models.Software, error) {
	var entries []models.Software

	err := cache.Aside(ctx, cache.CatalogKey, &entries, cache.CatalogTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("is_active = ?", true).
			Order("name ASC").
			Find(&entries).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *softwareRepository) List(ctx context.Context) ([]models.Software, error) {
	var entries []models.Software
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *softwareRepository) Create(ctx context.Context, software *models.Software) error {
	if err := r.db.WithContext(ctx).Create(software).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCatalog(ctx)
	return nil
}

func (r *softwareRepository) Update(ctx context.Context, software *models.Software) error {
	if err := r.db.WithContext(ctx).Save(software).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCatalog(ctx)
	return nil
}
