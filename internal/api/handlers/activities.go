package handlers

import (
	"fittrack/internal/models"
	"fittrack/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ActivityHandler handles HTTP requests for logged activities.
type ActivityHandler struct {
	service   *service.ActivityService
	validator *validator.Validate
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: svc, validator: validator.New()}
}

// List handles GET /api/activities. Activities are enriched with user_name
// and ordered newest activity date first.
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	activities, err := h.service.ListWithUserNames(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(activities)
}

// Get handles GET /api/activities/:id
func (h *ActivityHandler) Get(c *fiber.Ctx) error {
	activity, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(activity)
}

// Create handles POST /api/activities. Points are derived server-side and
// the owning user's total is updated best-effort.
func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var req models.ActivityRequest
	if !parseBody(c, h.validator, &req) {
		return nil
	}
	activity, err := h.service.Record(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(activity)
}

// Update handles PUT /api/activities/:id
func (h *ActivityHandler) Update(c *fiber.Ctx) error {
	var req models.ActivityRequest
	if !parseBody(c, h.validator, &req) {
		return nil
	}
	activity, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(activity)
}

// Delete handles DELETE /api/activities/:id
func (h *ActivityHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ByUser handles GET /api/activities/by_user?user_id=
func (h *ActivityHandler) ByUser(c *fiber.Ctx) error {
	activities, err := h.service.ListByUser(c.Context(), c.Query("user_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(activities)
}

// ByType handles GET /api/activities/by_type?activity_type=
func (h *ActivityHandler) ByType(c *fiber.Ctx) error {
	activities, err := h.service.ListByType(c.Context(), c.Query("activity_type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(activities)
}
