package handlers

import (
	"fittrack/internal/models"
	"fittrack/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WorkoutHandler handles HTTP requests for the workout catalog.
type WorkoutHandler struct {
	service   *service.WorkoutService
	validator *validator.Validate
}

// NewWorkoutHandler creates a new workout handler.
func NewWorkoutHandler(svc *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: svc, validator: validator.New()}
}

// List handles GET /api/workouts
func (h *WorkoutHandler) List(c *fiber.Ctx) error {
	workouts, err := h.service.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(workouts)
}

// Get handles GET /api/workouts/:id
func (h *WorkoutHandler) Get(c *fiber.Ctx) error {
	workout, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(workout)
}

// Create handles POST /api/workouts
func (h *WorkoutHandler) Create(c *fiber.Ctx) error {
	var req models.WorkoutRequest
	if !parseBody(c, h.validator, &req) {
		return nil
	}
	workout, err := h.service.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(workout)
}

// Update handles PUT /api/workouts/:id
func (h *WorkoutHandler) Update(c *fiber.Ctx) error {
	var req models.WorkoutRequest
	if !parseBody(c, h.validator, &req) {
		return nil
	}
	workout, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(workout)
}

// Delete handles DELETE /api/workouts/:id
func (h *WorkoutHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ByFitnessLevel handles GET /api/workouts/by_fitness_level?fitness_level=
// An absent level defaults to "all".
func (h *WorkoutHandler) ByFitnessLevel(c *fiber.Ctx) error {
	workouts, err := h.service.ByFitnessLevel(c.Context(), c.Query("fitness_level"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(workouts)
}

// ByActivityType handles GET /api/workouts/by_activity_type?activity_type=
func (h *WorkoutHandler) ByActivityType(c *fiber.Ctx) error {
	workouts, err := h.service.ByActivityType(c.Context(), c.Query("activity_type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(workouts)
}

// Recommendations handles GET /api/workouts/recommendations?user_id= and
// returns at most five workouts matching the user's fitness level or "all".
func (h *WorkoutHandler) Recommendations(c *fiber.Ctx) error {
	workouts, err := h.service.Recommend(c.Context(), c.Query("user_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(workouts)
}
