package svr

import (
	"github.com/gofiber/fiber/v2"
)

// V1 is the public itinerary API.
type V1 struct {
	fiber.Router
}

// Meta serves health and build information.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App) (*V1, *Meta) {
	v1 := app.Group("/api/v1")
	meta := app.Group("/api/_")

	return &V1{Router: v1}, &Meta{Router: meta}
}
