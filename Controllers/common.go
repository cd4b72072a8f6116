package Controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"Imperyo/Models"
)

// queryYear reads the year query parameter, falling back to the current
// calendar year when it is absent or unreadable.
func queryYear(c *fiber.Ctx) int {
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		return year
	}
	return time.Now().Year()
}

// RespondError maps a core error onto the screen response. Transport
// failures tell the operator the in-memory change is still held and the
// save must be retried.
func RespondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, Models.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, Models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, Models.ErrTransport):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  err.Error(),
			"advice": "The change is kept in memory; retry the save.",
		})
	case errors.Is(err, Models.ErrRestore):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":  err.Error(),
			"advice": "Sheets restored before the failure stand.",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
