package handlers

import (
	"fittrack/internal/models"
	"fittrack/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TeamHandler handles HTTP requests for teams and membership.
type TeamHandler struct {
	service   *service.TeamService
	validator *validator.Validate
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(svc *service.TeamService) *TeamHandler {
	return &TeamHandler{service: svc, validator: validator.New()}
}

// List handles GET /api/teams
func (h *TeamHandler) List(c *fiber.Ctx) error {
	teams, err := h.service.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(teams)
}

// Get handles GET /api/teams/:id
func (h *TeamHandler) Get(c *fiber.Ctx) error {
	team, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(team)
}

// Create handles POST /api/teams
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var req models.TeamRequest
	if !parseBody(c, h.validator, &req) {
		return nil
	}
	team, err := h.service.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(team)
}

// Update handles PUT /api/teams/:id
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	var req models.TeamRequest
	if !parseBody(c, h.validator, &req) {
		return nil
	}
	team, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(team)
}

// Delete handles DELETE /api/teams/:id
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddMember handles POST /api/teams/:id/add_member
func (h *TeamHandler) AddMember(c *fiber.Ctx) error {
	var req models.MembershipRequest
	if !parseBody(c, h.validator, &req) {
		return nil
	}
	team, err := h.service.AddMember(c.Context(), c.Params("id"), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Member added successfully",
		"team":    team,
	})
}

// RemoveMember handles POST /api/teams/:id/remove_member
func (h *TeamHandler) RemoveMember(c *fiber.Ctx) error {
	var req models.MembershipRequest
	if !parseBody(c, h.validator, &req) {
		return nil
	}
	team, err := h.service.RemoveMember(c.Context(), c.Params("id"), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Member removed successfully",
		"team":    team,
	})
}

// Members handles GET /api/teams/:id/members
func (h *TeamHandler) Members(c *fiber.Ctx) error {
	members, err := h.service.Members(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(members)
}
