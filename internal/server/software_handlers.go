package server

import (
	"accessdesk/internal/models"
	"accessdesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSoftwareCatalog handles GET /api/software
// @Summary List the software catalog
// @Description List active catalog entries ordered by name. Admins may pass includeInactive=true to see deactivated entries too.
// @Tags software
// @Produce json
// @Security BearerAuth
// @Param includeInactive query bool false "Include deactivated entries (admin only)"
// @Success 200 {array} models.Software
// @Failure 401 {object} models.ErrorResponse
// @Router /software [get]
func (s *Server) GetSoftwareCatalog(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("includeInactive", false) &&
		currentUserRole(c) == models.RoleAdmin

	entries, err := s.softwareService.ListCatalog(c.Context(), includeInactive)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(entries)
}

// CreateSoftware handles POST /api/software
// @Summary Create a catalog entry
// @Tags software
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,description=string,version=string,isActive=bool} true "Catalog entry"
// @Success 201 {object} models.Software
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /software [post]
func (s *Server) CreateSoftware(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Version     string `json:"version"`
		IsActive    *bool  `json:"isActive"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	software, err := s.softwareService.Create(c.Context(), service.SoftwareSpec{
		Name:        req.Name,
		Description: req.Description,
		Version:     req.Version,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(software)
}

// UpdateSoftware handles PATCH /api/software/:id
// @Summary Update a catalog entry
// @Tags software
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Software ID"
// @Param request body object{name=string,description=string,version=string,isActive=bool} true "Catalog entry"
// @Success 200 {object} models.Software
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /software/{id} [patch]
func (s *Server) UpdateSoftware(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Version     string `json:"version"`
		IsActive    *bool  `json:"isActive"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	software, err := s.softwareService.Update(c.Context(), id, service.SoftwareSpec{
		Name:        req.Name,
		Description: req.Description,
		Version:     req.Version,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(software)
}

// DeactivateSoftware handles DELETE /api/software/:id
// @Summary Deactivate a catalog entry
// @Description Remove an entry from the active catalog. The row and its request history are kept.
// @Tags software
// @Produce json
// @Security BearerAuth
// @Param id path int true "Software ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /software/{id} [delete]
func (s *Server) DeactivateSoftware(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.softwareService.Deactivate(c.Context(), id); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "Software deactivated successfully",
	})
}
