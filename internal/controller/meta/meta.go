package meta

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"go.uber.org/fx"

	"github.com/tripmates/itinerary-backend/internal/pkg/apperr"
	"github.com/tripmates/itinerary-backend/internal/pkg/bininfo"
	"github.com/tripmates/itinerary-backend/internal/pkg/cachectrl"
	"github.com/tripmates/itinerary-backend/internal/pkg/flog"
	"github.com/tripmates/itinerary-backend/internal/server/svr"
	"github.com/tripmates/itinerary-backend/internal/service"
)

type Meta struct {
	fx.In

	HealthService *service.Health
}

func RegisterMeta(meta *svr.Meta, c Meta) {
	meta.Get("/bininfo", c.BinInfo)

	meta.Get("/health", cache.New(cache.Config{
		// cache it for a second to mitigate potential DDoS
		Expiration: time.Second,
	}), c.Health)
}

func (c *Meta) BinInfo(ctx *fiber.Ctx) error {
	cachectrl.OptIn(ctx, time.Hour)
	return ctx.JSON(fiber.Map{
		"version": bininfo.Version,
		"commit":  bininfo.Commit,
		"build":   bininfo.BuildTime,
	})
}

func (c *Meta) Health(ctx *fiber.Ctx) error {
	if err := c.HealthService.Ping(ctx.UserContext()); err != nil {
		flog.WarnFrom(ctx).
			Str("evt.name", "health.check.failed").
			Err(err).
			Msg("health check failed")
		return apperr.New(fiber.StatusServiceUnavailable, "UNHEALTHY", err.Error())
	}

	cachectrl.OptOut(ctx)
	return ctx.JSON(fiber.Map{
		"status": "ok",
	})
}
