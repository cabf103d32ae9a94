package server

import (
	"fmt"
	"net/http"
	"testing"

	"accessdesk/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSoftwareCatalog(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	s := newTestServer(t, db)
	employee := createTestUser(t, db, "emp@example.com", models.RoleEmployee)
	admin := createTestUser(t, db, "adm@example.com", models.RoleAdmin)

	createTestSoftware(t, db, "Zoom", true)
	createTestSoftware(t, db, "Asana", true)
	createTestSoftware(t, db, "Legacy CRM", false)

	app := fiber.New()
	app.Get("/emp/software", asUser(employee, s.GetSoftwareCatalog))
	app.Get("/adm/software", asUser(admin, s.GetSoftwareCatalog))

	t.Run("lists only active entries ordered by name", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/emp/software", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out []models.Software
		decodeBody(t, resp, &out)
		require.Len(t, out, 2)
		assert.Equal(t, "Asana", out[0].Name)
		assert.Equal(t, "Zoom", out[1].Name)
	})

	t.Run("includeInactive is ignored for non-admins", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/emp/software?includeInactive=true", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out []models.Software
		decodeBody(t, resp, &out)
		assert.Len(t, out, 2)
	})

	t.Run("admin can include inactive entries", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/adm/software?includeInactive=true", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out []models.Software
		decodeBody(t, resp, &out)
		assert.Len(t, out, 3)
	})
}

func TestCreateSoftware(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	s := newTestServer(t, db)
	admin := createTestUser(t, db, "adm@example.com", models.RoleAdmin)

	app := fiber.New()
	app.Post("/software", asUser(admin, s.CreateSoftware))

	t.Run("success", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/software", fiber.Map{
			"name":        "GitLab",
			"description": "Source hosting and CI pipelines",
			"version":     "17.3",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created models.Software
		decodeBody(t, resp, &created)
		assert.Equal(t, "GitLab", created.Name)
		assert.True(t, created.IsActive, "new entries are active by default")
	})

	t.Run("short description returns 400", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/software", fiber.Map{
			"name":        "GitLab",
			"description": "short",
			"version":     "17.3",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing version returns 400", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPost, "/software", fiber.Map{
			"name":        "GitLab",
			"description": "Source hosting and CI pipelines",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateSoftware(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	s := newTestServer(t, db)
	admin := createTestUser(t, db, "adm@example.com", models.RoleAdmin)
	software := createTestSoftware(t, db, "Notion", true)

	app := fiber.New()
	app.Patch("/software/:id", asUser(admin, s.UpdateSoftware))

	t.Run("success replaces fields", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPatch, fmt.Sprintf("/software/%d", software.ID), fiber.Map{
			"name":        "Notion Enterprise",
			"description": "Docs and knowledge base, enterprise plan",
			"version":     "2.0",
			"isActive":    false,
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.Software
		decodeBody(t, resp, &updated)
		assert.Equal(t, "Notion Enterprise", updated.Name)
		assert.False(t, updated.IsActive)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		req := jsonRequest(t, http.MethodPatch, "/software/9999", fiber.Map{
			"name":        "Nothing",
			"description": "This software does not exist at all",
			"version":     "1.0",
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeactivateSoftware(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	s := newTestServer(t, db)
	admin := createTestUser(t, db, "adm@example.com", models.RoleAdmin)
	employee := createTestUser(t, db, "emp@example.com", models.RoleEmployee)
	software := createTestSoftware(t, db, "Jenkins", true)

	// An existing request must survive deactivation.
	request := models.AccessRequest{
		UserID:     employee.ID,
		SoftwareID: software.ID,
		Status:     models.RequestStatusPending,
		Reason:     "Maintaining the legacy build pipeline",
	}
	require.NoError(t, db.Create(&request).Error)

	app := fiber.New()
	app.Delete("/software/:id", asUser(admin, s.DeactivateSoftware))

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, fmt.Sprintf("/software/%d", software.ID), nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Software
	require.NoError(t, db.First(&stored, software.ID).Error, "row must not be deleted")
	assert.False(t, stored.IsActive)

	var keptRequest models.AccessRequest
	assert.NoError(t, db.First(&keptRequest, request.ID).Error, "request history stays intact")

	t.Run("deactivating twice is idempotent", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, fmt.Sprintf("/software/%d", software.ID), nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
