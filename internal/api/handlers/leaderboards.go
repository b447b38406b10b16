package handlers

import (
	"context"

	"fittrack/internal/models"
	"fittrack/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Pinger reports backing-store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LeaderboardHandler handles HTTP requests for ranking snapshots, the live
// rank search, and the health check.
type LeaderboardHandler struct {
	service   *service.LeaderboardService
	validator *validator.Validate
	stores    []Pinger
}

// NewLeaderboardHandler creates a new leaderboard handler. stores are pinged
// by the health check.
func NewLeaderboardHandler(svc *service.LeaderboardService, stores ...Pinger) *LeaderboardHandler {
	return &LeaderboardHandler{
		service:   svc,
		validator: validator.New(),
		stores:    stores,
	}
}

// List handles GET /api/leaderboard
func (h *LeaderboardHandler) List(c *fiber.Ctx) error {
	boards, err := h.service.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(boards)
}

// Get handles GET /api/leaderboard/:id
func (h *LeaderboardHandler) Get(c *fiber.Ctx) error {
	board, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(board)
}

// Create handles POST /api/leaderboard
func (h *LeaderboardHandler) Create(c *fiber.Ctx) error {
	var req models.LeaderboardRequest
	if !parseBody(c, h.validator, &req) {
		return nil
	}
	board, err := h.service.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(board)
}

// Update handles PUT /api/leaderboard/:id
func (h *LeaderboardHandler) Update(c *fiber.Ctx) error {
	var req models.LeaderboardRequest
	if !parseBody(c, h.validator, &req) {
		return nil
	}
	board, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(board)
}

// Delete handles DELETE /api/leaderboard/:id
func (h *LeaderboardHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Current handles GET /api/leaderboard/current?period= and returns the
// snapshot with the newest period_start for the period. Defaults to weekly.
func (h *LeaderboardHandler) Current(c *fiber.Ctx) error {
	period := c.Query("period", models.PeriodWeekly)
	board, err := h.service.Current(c.Context(), period)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(board)
}

// Search handles GET /api/search/:username, the live rank and points lookup.
func (h *LeaderboardHandler) Search(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return respondError(c, models.NewValidationError("username", "is required"))
	}
	result, err := h.service.SearchUser(c.Context(), username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Health handles GET /api/health
func (h *LeaderboardHandler) Health(c *fiber.Ctx) error {
	for _, store := range h.stores {
		if err := store.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
				Error:   "Health check failed",
				Message: err.Error(),
			})
		}
	}
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"message": "All systems operational",
	})
}
