package rekuest

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/gofiber/fiber/v2"

	"github.com/tripmates/itinerary-backend/internal/constant"
	"github.com/tripmates/itinerary-backend/internal/util/i18n"
)

// TranslatorFromCtx returns the translator negotiated by the i18n middleware,
// or the fallback when the middleware did not run.
func TranslatorFromCtx(ctx *fiber.Ctx) ut.Translator {
	if tr, ok := ctx.Locals(constant.LocalsTranslatorKey).(ut.Translator); ok {
		return tr
	}
	return i18n.UT.GetFallback()
}
