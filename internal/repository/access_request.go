package repository

import (
	"context"
	"errors"

	"accessdesk/internal/models"

	"gorm.io/gorm"
)

// AccessRequestRepository defines persistence operations for access requests.
// Requests are append-and-update only; nothing here deletes rows.
type AccessRequestRepository interface {
	Create(ctx context.Context, request *models.AccessRequest) error
	GetByID(ctx context.Context, id uint) (*models.AccessRequest, error)
	ListAll(ctx context.Context) ([]models.AccessRequest, error)
	ListByStatus(ctx context.Context, status models.RequestStatus) ([]models.AccessRequest, error)
	ListByUser(ctx context.Context, userID uint) ([]models.AccessRequest, error)
}

type accessRequestRepository struct {
	db *gorm.DB
}

// NewAccessRequestRepository returns a new AccessRequestRepository implementation.
func NewAccessRequestRepository(db *gorm.DB) AccessRequestRepository {
	return &accessRequestRepository{db: db}
}

func (r *accessRequestRepository) Create(ctx context.Context, request *models.AccessRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *accessRequestRepository) GetByID(ctx context.Context, id uint) (*models.AccessRequest, error) {
	var request models.AccessRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Software").
		First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Access request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *accessRequestRepository) ListAll(ctx context.Context) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Software").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *accessRequestRepository) ListByStatus(ctx context.Context, status models.RequestStatus) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Software").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *accessRequestRepository) ListByUser(ctx context.Context, userID uint) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	if err := r.db.WithContext(ctx).
		Preload("Software").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}
