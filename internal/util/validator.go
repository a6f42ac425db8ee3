package util

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/guregu/null.v3"
)

const isoDateLayout = "2006-01-02"

func NewValidator() *validator.Validate {
	validate := validator.New()
	if err := validate.RegisterValidation("isodate", isoDate); err != nil {
		panic(err)
	}
	validate.RegisterCustomTypeFunc(nullIntValuer, null.Int{})
	validate.RegisterCustomTypeFunc(nullStringValuer, null.String{})
	validate.RegisterCustomTypeFunc(nullBoolValuer, null.Bool{})

	return validate
}

// isoDate accepts a calendar date, optionally followed by a time part.
func isoDate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if len(val) > len(isoDateLayout) {
		val = val[:len(isoDateLayout)]
	}
	_, err := time.Parse(isoDateLayout, val)
	return err == nil
}

// The null valuers return a pointer for present values so that omitempty only
// skips absent fields, not present zero values.

func nullIntValuer(field reflect.Value) interface{} {
	if valuer, ok := field.Interface().(null.Int); ok && valuer.Valid {
		return &valuer.Int64
	}

	return nil
}

func nullStringValuer(field reflect.Value) interface{} {
	if valuer, ok := field.Interface().(null.String); ok && valuer.Valid {
		return &valuer.String
	}

	return nil
}

func nullBoolValuer(field reflect.Value) interface{} {
	if valuer, ok := field.Interface().(null.Bool); ok && valuer.Valid {
		return &valuer.Bool
	}

	return nil
}
