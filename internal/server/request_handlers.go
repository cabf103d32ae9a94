package server

import (
	"accessdesk/internal/models"
	"accessdesk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateAccessRequest handles POST /api/access-requests
// @Summary Submit an access request
// @Description Request access to an active catalog entry. The request starts in pending status.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{softwareId=int,reason=string} true "Access request"
// @Success 201 {object} models.AccessRequest
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /access-requests [post]
func (s *Server) CreateAccessRequest(c *fiber.Ctx) error {
	var req struct {
		SoftwareID uint   `json:"softwareId"`
		Reason     string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.SoftwareID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("softwareId is required"))
	}

	request, err := s.requestService.Submit(c.Context(), service.SubmitInput{
		UserID:     currentUserID(c),
		SoftwareID: req.SoftwareID,
		Reason:     req.Reason,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetAccessRequests handles GET /api/access-requests
// @Summary List access requests
// @Description Admins see every request, managers see the pending queue, employees see their own history. Newest first.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AccessRequest
// @Failure 401 {object} models.ErrorResponse
// @Router /access-requests [get]
func (s *Server) GetAccessRequests(c *fiber.Ctx) error {
	requests, err := s.requestService.ListFor(c.Context(), currentUserID(c), currentUserRole(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(requests)
}

// DecideAccessRequest handles PATCH /api/access-requests/:id/status
// @Summary Decide an access request
// @Description Approve or reject a pending request. Rejections require a reason. A decided request cannot be decided again.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body object{status=string,rejectionReason=string} true "Decision"
// @Success 200 {object} models.AccessRequest
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /access-requests/{id}/status [patch]
func (s *Server) DecideAccessRequest(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status          models.RequestStatus `json:"status"`
		RejectionReason string               `json:"rejectionReason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	request, err := s.requestService.Decide(c.Context(), service.DecideInput{
		RequestID:       id,
		Status:          req.Status,
		RejectionReason: req.RejectionReason,
		DeciderID:       currentUserID(c),
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(request)
}
