// Package service contains the business logic between HTTP handlers and
// repositories.
package service

import (
	"context"
	"errors"
	"strings"

	"accessdesk/internal/models"
	"accessdesk/internal/observability"
	"accessdesk/internal/repository"
	"accessdesk/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestService implements the access-request workflow: submission,
// role-scoped listing, and the single pending -> approved|rejected decision.
type RequestService struct {
	db           *gorm.DB
	requestRepo  repository.AccessRequestRepository
	softwareRepo repository.SoftwareRepository
}

// NewRequestService returns a RequestService bound to the given DB and repositories.
func NewRequestService(db *gorm.DB, requestRepo repository.AccessRequestRepository, softwareRepo repository.SoftwareRepository) *RequestService {
	return &RequestService{
		db:           db,
		requestRepo:  requestRepo,
		softwareRepo: softwareRepo,
	}
}

// SubmitInput carries the fields of a new access request.
type SubmitInput struct {
	UserID     uint
	SoftwareID uint
	Reason     string
}

// Submit records a new access request in pending status against an existing
// catalog entry.
func (s *RequestService) Submit(ctx context.Context, in SubmitInput) (*models.AccessRequest, error) {
	in.Reason = strings.TrimSpace(in.Reason)
	if err := validation.ValidateReason(in.Reason); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	software, err := s.softwareRepo.GetByID(ctx, in.SoftwareID)
	if err != nil {
		return nil, err
	}
	if !software.IsActive {
		return nil, models.NewValidationError("Software is not available for request")
	}

	request := &models.AccessRequest{
		UserID:     in.UserID,
		SoftwareID: software.ID,
		Status:     models.RequestStatusPending,
		Reason:     in.Reason,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	request.Software = software

	observability.RequestsSubmitted.Inc()
	return request, nil
}

// ListFor returns requests visible to the caller: admins see everything,
// managers see the pending queue, employees see only their own. All listings
// are newest first.
func (s *RequestService) ListFor(ctx context.Context, userID uint, role models.Role) ([]models.AccessRequest, error) {
	switch role {
	case models.RoleAdmin:
		return s.requestRepo.ListAll(ctx)
	case models.RoleManager:
		return s.requestRepo.ListByStatus(ctx, models.RequestStatusPending)
	default:
		return s.requestRepo.ListByUser(ctx, userID)
	}
}

// DecideInput carries one decision on a pending access request.
type DecideInput struct {
	RequestID       uint
	Status          models.RequestStatus
	RejectionReason string
	DeciderID       uint
}

// Decide transitions a pending request to approved or rejected. The row is
// locked for the duration of the transaction and only a pending request may
// be decided, so concurrent decisions cannot both win. A rejection without a
// reason fails before anything is written. A supplied reason is ignored for
// approvals.
func (s *RequestService) Decide(ctx context.Context, in DecideInput) (*models.AccessRequest, error) {
	span, ctx := observability.NewSpan(ctx, "request.decide")
	defer span.End()
	span.AddAttributes(
		attribute.Int("request.id", int(in.RequestID)),
		attribute.String("decision.status", string(in.Status)),
	)

	if !in.Status.Valid() || in.Status == models.RequestStatusPending {
		return nil, models.NewValidationError("status must be approved or rejected")
	}

	in.RejectionReason = strings.TrimSpace(in.RejectionReason)
	if in.Status == models.RequestStatusRejected && in.RejectionReason == "" {
		return nil, models.NewValidationError("Rejection reason is required")
	}

	var decided models.AccessRequest
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// SQLite has no row locks; its single-writer transactions already
		// serialize decisions.
		if tx.Dialector.Name() != "sqlite" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&decided, in.RequestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Access request", in.RequestID)
			}
			return models.NewInternalError(err)
		}

		if decided.Status != models.RequestStatusPending {
			return models.NewConflictError("access request has already been decided")
		}

		decided.Status = in.Status
		decided.DecidedByUserID = &in.DeciderID
		if in.Status == models.RequestStatusRejected {
			decided.RejectionReason = in.RejectionReason
		}

		if err := tx.Save(&decided).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if txErr != nil {
		span.SetError(txErr)
		return nil, txErr
	}

	observability.RequestDecisions.WithLabelValues(string(decided.Status)).Inc()
	return s.requestRepo.GetByID(ctx, decided.ID)
}
