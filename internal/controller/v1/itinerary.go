package v1

import (
	"github.com/go-redsync/redsync/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/tripmates/itinerary-backend/internal/app/appconfig"
	"github.com/tripmates/itinerary-backend/internal/constant"
	"github.com/tripmates/itinerary-backend/internal/model/types"
	"github.com/tripmates/itinerary-backend/internal/pkg/apperr"
	"github.com/tripmates/itinerary-backend/internal/pkg/cachectrl"
	"github.com/tripmates/itinerary-backend/internal/pkg/fiberstore"
	"github.com/tripmates/itinerary-backend/internal/pkg/flog"
	"github.com/tripmates/itinerary-backend/internal/pkg/middlewares"
	"github.com/tripmates/itinerary-backend/internal/server/svr"
	"github.com/tripmates/itinerary-backend/internal/service"
	"github.com/tripmates/itinerary-backend/internal/util/rekuest"
)

type Itinerary struct {
	fx.In

	Config           *appconfig.Config
	Redis            *redis.Client    `optional:"true"`
	RedSync          *redsync.Redsync `optional:"true"`
	ItineraryService *service.Itinerary
}

func RegisterItinerary(v1 *svr.V1, c Itinerary) {
	create := []fiber.Handler{c.CreateItinerary}
	if c.Redis != nil && c.RedSync != nil {
		create = append([]fiber.Handler{middlewares.Idempotency(&middlewares.IdempotencyConfig{
			Lifetime:  c.Config.IdempotencyTTL,
			KeyHeader: constant.IdempotencyKeyHeader,
			KeepResponseHeaders: []string{
				fiber.HeaderContentType,
				fiber.HeaderContentLength,
			},
			Storage: fiberstore.NewRedis(c.Redis, constant.IdempotencyRedisPrefix),
			RedSync: c.RedSync,
		})}, create...)
	}

	v1.Post("/itineraries", create...)
	v1.Patch("/users/:userId/itineraries/:itineraryId", c.EditItinerary)
	v1.Delete("/users/:userId/itineraries/:itineraryId", c.DeleteItinerary)
}

// CreateItinerary generates the activities for a new itinerary and stores it
// together with the requesting user's creator membership.
func (c *Itinerary) CreateItinerary(ctx *fiber.Ctx) error {
	var req types.CreateItineraryRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}

	itinerary, err := c.ItineraryService.CreateItinerary(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	flog.InfoFrom(ctx).
		Str("evt.name", "itinerary.create.ok").
		Int64("itineraryId", itinerary.ItineraryID).
		Int("activities", len(itinerary.Activities)).
		Msg("created itinerary")

	cachectrl.OptOut(ctx)
	return ctx.Status(fiber.StatusCreated).JSON(itinerary)
}

func (c *Itinerary) EditItinerary(ctx *fiber.Ctx) error {
	userID, itineraryID, err := pathIDs(ctx)
	if err != nil {
		return err
	}

	var req types.EditItineraryRequest
	if err := rekuest.ValidBody(ctx, &req); err != nil {
		return err
	}
	if req.Empty() {
		return apperr.ErrInvalidReq.Msg("invalid request: no field to update")
	}

	itinerary, err := c.ItineraryService.EditItinerary(ctx.UserContext(), userID, itineraryID, &req)
	if err != nil {
		return err
	}

	cachectrl.OptOut(ctx)
	return ctx.JSON(itinerary)
}

func (c *Itinerary) DeleteItinerary(ctx *fiber.Ctx) error {
	userID, itineraryID, err := pathIDs(ctx)
	if err != nil {
		return err
	}

	confirmation, err := c.ItineraryService.DeleteItinerary(ctx.UserContext(), userID, itineraryID)
	if err != nil {
		return err
	}

	cachectrl.OptOut(ctx)
	return ctx.JSON(confirmation)
}

func pathIDs(ctx *fiber.Ctx) (userID, itineraryID int64, err error) {
	if userID, err = rekuest.ParamID(ctx, "userId"); err != nil {
		return
	}
	itineraryID, err = rekuest.ParamID(ctx, "itineraryId")
	return
}
