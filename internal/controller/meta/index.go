package meta

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tripmates/itinerary-backend/internal/pkg/bininfo"
)

func RegisterIndex(app *fiber.App) {
	app.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Itinerary API",
			"version": bininfo.Version,
		})
	})
}
