package util

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"
)

func TestNullFieldsValidation(t *testing.T) {
	type patch struct {
		Name   null.String `validate:"omitempty,min=1,max=8"`
		MaxPax null.Int    `validate:"omitempty,gte=1,lte=10"`
	}

	v := NewValidator()

	assert.NoError(t, v.Struct(patch{}))
	assert.NoError(t, v.Struct(patch{Name: null.StringFrom("Kyoto"), MaxPax: null.IntFrom(3)}))
	assert.Error(t, v.Struct(patch{MaxPax: null.IntFrom(0)}))
	assert.Error(t, v.Struct(patch{MaxPax: null.IntFrom(11)}))
	assert.Error(t, v.Struct(patch{Name: null.StringFrom("")}))
	assert.Error(t, v.Struct(patch{Name: null.StringFrom("a very long name")}))
}

func TestISODate(t *testing.T) {
	var v *validator.Validate
	require.NotPanics(t, func() { v = NewValidator() })

	assert.NoError(t, v.Var("2024-05-01", "isodate"))
	assert.NoError(t, v.Var("2024-05-01T10:00:00Z", "isodate"))
	assert.Error(t, v.Var("05/01/2024", "isodate"))
	assert.Error(t, v.Var("2024-13-01", "isodate"))
}
