package service

import (
	"context"
	"testing"

	"accessdesk/internal/models"

	"github.com/stretchr/testify/require"
)

// Function-backed repository stubs shared by the service tests in this
// package. Each test overrides only the methods it needs.

type userRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createFn     func(ctx context.Context, user *models.User) error
	updateFn     func(ctx context.Context, user *models.User) error
	listFn       func(ctx context.Context, limit, offset int) ([]models.User, error)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
		listFn:       func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

type softwareRepoStub struct {
	getByIDFn    func(ctx context.Context, id uint) (*models.Software, error)
	listActiveFn func(ctx context.Context) ([]models.Software, error)
	listFn       func(ctx context.Context) ([]models.Software, error)
	createFn     func(ctx context.Context, software *models.Software) error
	updateFn     func(ctx context.Context, software *models.Software) error
}

func noopSoftwareRepo() *softwareRepoStub {
	return &softwareRepoStub{
		getByIDFn:    func(_ context.Context, id uint) (*models.Software, error) { return &models.Software{ID: id}, nil },
		listActiveFn: func(context.Context) ([]models.Software, error) { return nil, nil },
		listFn:       func(context.Context) ([]models.Software, error) { return nil, nil },
		createFn:     func(context.Context, *models.Software) error { return nil },
		updateFn:     func(context.Context, *models.Software) error { return nil },
	}
}

func (s *softwareRepoStub) GetByID(ctx context.Context, id uint) (*models.Software, error) {
	return s.getByIDFn(ctx, id)
}
func (s *softwareRepoStub) ListActive(ctx context.Context) ([]models.Software, error) {
	return s.listActiveFn(ctx)
}
func (s *softwareRepoStub) List(ctx context.Context) ([]models.Software, error) {
	return s.listFn(ctx)
}
func (s *softwareRepoStub) Create(ctx context.Context, software *models.Software) error {
	return s.createFn(ctx, software)
}
func (s *softwareRepoStub) Update(ctx context.Context, software *models.Software) error {
	return s.updateFn(ctx, software)
}

type requestRepoStub struct {
	createFn       func(ctx context.Context, request *models.AccessRequest) error
	getByIDFn      func(ctx context.Context, id uint) (*models.AccessRequest, error)
	listAllFn      func(ctx context.Context) ([]models.AccessRequest, error)
	listByStatusFn func(ctx context.Context, status models.RequestStatus) ([]models.AccessRequest, error)
	listByUserFn   func(ctx context.Context, userID uint) ([]models.AccessRequest, error)
}

func noopRequestRepo() *requestRepoStub {
	return &requestRepoStub{
		createFn:  func(context.Context, *models.AccessRequest) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.AccessRequest, error) { return &models.AccessRequest{ID: id}, nil },
		listAllFn: func(context.Context) ([]models.AccessRequest, error) { return nil, nil },
		listByStatusFn: func(context.Context, models.RequestStatus) ([]models.AccessRequest, error) {
			return nil, nil
		},
		listByUserFn: func(context.Context, uint) ([]models.AccessRequest, error) { return nil, nil },
	}
}

func (s *requestRepoStub) Create(ctx context.Context, request *models.AccessRequest) error {
	return s.createFn(ctx, request)
}
func (s *requestRepoStub) GetByID(ctx context.Context, id uint) (*models.AccessRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *requestRepoStub) ListAll(ctx context.Context) ([]models.AccessRequest, error) {
	return s.listAllFn(ctx)
}
func (s *requestRepoStub) ListByStatus(ctx context.Context, status models.RequestStatus) ([]models.AccessRequest, error) {
	return s.listByStatusFn(ctx, status)
}
func (s *requestRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.AccessRequest, error) {
	return s.listByUserFn(ctx, userID)
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, code, appErr.Code)
}
