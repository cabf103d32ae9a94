package service

import (
	"context"
	"testing"

	"accessdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftwareService_Create(t *testing.T) {
	t.Parallel()

	t.Run("defaults to active and trims fields", func(t *testing.T) {
		t.Parallel()
		repo := noopSoftwareRepo()
		var created *models.Software
		repo.createFn = func(_ context.Context, sw *models.Software) error {
			created = sw
			return nil
		}
		svc := NewSoftwareService(repo)
		software, err := svc.Create(context.Background(), SoftwareSpec{
			Name:        "  GitLab  ",
			Description: "  Source hosting and CI pipelines  ",
			Version:     " 17.3 ",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "GitLab", software.Name)
		assert.Equal(t, "Source hosting and CI pipelines", software.Description)
		assert.Equal(t, "17.3", software.Version)
		assert.True(t, software.IsActive)
	})

	t.Run("name too short", func(t *testing.T) {
		t.Parallel()
		svc := NewSoftwareService(noopSoftwareRepo())
		_, err := svc.Create(context.Background(), SoftwareSpec{
			Name:        "G",
			Description: "Source hosting and CI pipelines",
			Version:     "17.3",
		})
		assertErrorCode(t, err, models.CodeValidation)
	})

	t.Run("description too short", func(t *testing.T) {
		t.Parallel()
		svc := NewSoftwareService(noopSoftwareRepo())
		_, err := svc.Create(context.Background(), SoftwareSpec{
			Name:        "GitLab",
			Description: "short",
			Version:     "17.3",
		})
		assertErrorCode(t, err, models.CodeValidation)
	})

	t.Run("missing version", func(t *testing.T) {
		t.Parallel()
		svc := NewSoftwareService(noopSoftwareRepo())
		_, err := svc.Create(context.Background(), SoftwareSpec{
			Name:        "GitLab",
			Description: "Source hosting and CI pipelines",
			Version:     "   ",
		})
		assertErrorCode(t, err, models.CodeValidation)
	})
}

func TestSoftwareService_ListCatalog(t *testing.T) {
	t.Parallel()

	repo := noopSoftwareRepo()
	var active, all int
	repo.listActiveFn = func(context.Context) ([]models.Software, error) {
		active++
		return nil, nil
	}
	repo.listFn = func(context.Context) ([]models.Software, error) {
		all++
		return nil, nil
	}
	svc := NewSoftwareService(repo)

	_, err := svc.ListCatalog(context.Background(), false)
	require.NoError(t, err)
	_, err = svc.ListCatalog(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 1, active)
	assert.Equal(t, 1, all)
}

func TestSoftwareService_Deactivate(t *testing.T) {
	t.Parallel()

	t.Run("clears the active flag in place", func(t *testing.T) {
		t.Parallel()
		repo := noopSoftwareRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Software, error) {
			return &models.Software{ID: id, Name: "Jenkins", IsActive: true}, nil
		}
		var saved *models.Software
		repo.updateFn = func(_ context.Context, sw *models.Software) error {
			saved = sw
			return nil
		}
		svc := NewSoftwareService(repo)
		require.NoError(t, svc.Deactivate(context.Background(), 4))
		require.NotNil(t, saved)
		assert.False(t, saved.IsActive)
		assert.Equal(t, "Jenkins", saved.Name, "only the flag changes")
	})

	t.Run("unknown entry propagates not found", func(t *testing.T) {
		t.Parallel()
		repo := noopSoftwareRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Software, error) {
			return nil, models.NewNotFoundError("Software", id)
		}
		svc := NewSoftwareService(repo)
		err := svc.Deactivate(context.Background(), 99)
		assertErrorCode(t, err, models.CodeNotFound)
	})
}
