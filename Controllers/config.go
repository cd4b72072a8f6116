package Controllers

import (
	"github.com/gofiber/fiber/v2"

	"Imperyo/Models"
)

// ConfigHandler exposes the read-only catalogue lists that populate the
// screen selectors.
type ConfigHandler struct {
	State *Models.AppState
}

// NewConfigHandler creates a config handler.
func NewConfigHandler(state *Models.AppState) *ConfigHandler {
	return &ConfigHandler{State: state}
}

// GetLists returns the four catalogue lists.
func (h *ConfigHandler) GetLists(c *fiber.Ctx) error {
	return c.JSON(h.State.Lists)
}
