package rekuest

import (
	"errors"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	esTranslations "github.com/go-playground/validator/v10/translations/es"
	frTranslations "github.com/go-playground/validator/v10/translations/fr"
	jaTranslations "github.com/go-playground/validator/v10/translations/ja"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/tripmates/itinerary-backend/internal/pkg/apperr"
	"github.com/tripmates/itinerary-backend/internal/util"
	"github.com/tripmates/itinerary-backend/internal/util/i18n"
)

var Validate = util.NewValidator()

var isoDateMessages = map[string]string{
	"en": "{0} must be a date formatted as YYYY-MM-DD",
	"es": "{0} debe ser una fecha con formato AAAA-MM-DD",
	"fr": "{0} doit être une date au format AAAA-MM-JJ",
	"ja": "{0}はYYYY-MM-DD形式の日付でなければなりません",
}

func init() {
	register := map[string]func(*validator.Validate, ut.Translator) error{
		"en": enTranslations.RegisterDefaultTranslations,
		"es": esTranslations.RegisterDefaultTranslations,
		"fr": frTranslations.RegisterDefaultTranslations,
		"ja": jaTranslations.RegisterDefaultTranslations,
	}

	for locale, fn := range register {
		tr, _ := i18n.UT.GetTranslator(locale)
		if err := fn(Validate, tr); err != nil {
			log.Warn().Err(err).Str("locale", locale).Msg("could not register translation")
			continue
		}

		message := isoDateMessages[locale]
		err := Validate.RegisterTranslation("isodate", tr, func(ut ut.Translator) error {
			return ut.Add("isodate", message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("isodate", fe.Field())
			return t
		})
		if err != nil {
			log.Warn().Err(err).Str("locale", locale).Msg("could not register translation for function isodate")
		}
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func translate(utt ut.Translator, ve validator.ValidationErrors) []*ErrorResponse {
	trans := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		trans = append(trans, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Translate(utt),
		})
	}
	return trans
}

func validateVar(ctx *fiber.Ctx, s any, tag string) []*ErrorResponse {
	err := Validate.Var(s, tag)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		panic(err)
	}
	return translate(TranslatorFromCtx(ctx), ve)
}

func validateStruct(ctx *fiber.Ctx, s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		panic(err)
	}
	return translate(TranslatorFromCtx(ctx), ve)
}

// ValidBody will get the body from *fiber.Ctx using fiber#BodyParser(),
// and validate it using the validator singleton. If the validation passed it will write the unmarshalled body
// to dest and return a nil, otherwise it will return an error. Notice that dest shall
// always be a pointer.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return apperr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	if err := validateStruct(ctx, dest); err != nil {
		return apperr.NewInvalidViolations(err)
	}

	return nil
}

func ValidStruct(ctx *fiber.Ctx, dest any) error {
	if err := validateStruct(ctx, dest); err != nil {
		return apperr.NewInvalidViolations(err)
	}

	return nil
}

func ValidVar(ctx *fiber.Ctx, field any, tag string) error {
	if err := validateVar(ctx, field, tag); err != nil {
		return apperr.NewInvalidViolations(err)
	}

	return nil
}

// ParamID reads a positive integer path parameter.
func ParamID(ctx *fiber.Ctx, key string) (int64, error) {
	id, err := ctx.ParamsInt(key)
	if err != nil || id <= 0 {
		return 0, apperr.ErrInvalidReq.Msg("invalid request: %s must be a positive integer", key)
	}
	return int64(id), nil
}
