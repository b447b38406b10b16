package handlers

import (
	"errors"

	"fittrack/internal/models"
	"fittrack/internal/repository"
	"fittrack/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps the service/repository error taxonomy onto HTTP statuses:
// validation 400, duplicate key 409, not found 404, membership guards 400,
// anything else 500.
func respondError(c *fiber.Ctx, err error) error {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Validation failed",
			Message: vErr.Error(),
		})
	case errors.Is(err, repository.ErrDuplicateKey):
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{
			Error:   "Duplicate key",
			Message: err.Error(),
		})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
			Error:   "Not found",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrAlreadyMember), errors.Is(err, service.ErrNotMember):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Membership violation",
			Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Request failed",
			Message: err.Error(),
		})
	}
}

// parseBody decodes and validates a request payload, writing the 400 response
// itself on failure.
func parseBody(c *fiber.Ctx, v *validator.Validate, out interface{}) bool {
	if err := c.BodyParser(out); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return false
	}
	if err := v.Struct(out); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return false
	}
	return true
}
