package handlers

import (
	"fittrack/internal/models"
	"fittrack/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	service   *service.UserService
	validator *validator.Validate
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc, validator: validator.New()}
}

// List handles GET /api/users. Users are enriched with team_name and ordered
// by total points descending.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.service.ListWithTeamNames(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// Get handles GET /api/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// Create handles POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req models.UserRequest
	if !parseBody(c, h.validator, &req) {
		return nil
	}
	user, err := h.service.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Update handles PUT /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req models.UserRequest
	if !parseBody(c, h.validator, &req) {
		return nil
	}
	user, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// Delete handles DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Activities handles GET /api/users/:id/activities
func (h *UserHandler) Activities(c *fiber.Ctx) error {
	activities, err := h.service.Activities(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(activities)
}

// Stats handles GET /api/users/:id/stats
func (h *UserHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
