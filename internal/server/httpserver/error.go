package httpserver

import (
	"errors"
	"strconv"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/tripmates/itinerary-backend/internal/pkg/apperr"
	"github.com/tripmates/itinerary-backend/internal/pkg/flog"
)

func handleCustomError(ctx *fiber.Ctx, e *apperr.Error) error {
	flog.WarnFrom(ctx).
		Err(e).
		Str("evt.name", "http.error").
		Str("code", e.ErrorCode).
		Msg(e.Message)

	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}

	if e.Extras != nil && len(*e.Extras) > 0 {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

// ErrorHandler renders every error as a JSON {code, message} body. Errors that
// are not an *apperr.Error are reported to sentry as internal errors.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	if e, ok := apperr.From(err); ok {
		return handleCustomError(ctx, e)
	}

	re := *apperr.ErrInternalError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		re.StatusCode = fe.Code
		re.ErrorCode = "UNKNOWN_ERROR"
		re.Message = fe.Message
	}

	log.Error().
		Stack().
		Err(err).
		Str("evt.name", "http.error.internal").
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil && re.StatusCode >= fiber.StatusInternalServerError {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, &re)
}
