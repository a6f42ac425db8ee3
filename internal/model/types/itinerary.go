package types

import (
	"gopkg.in/guregu/null.v3"

	"github.com/tripmates/itinerary-backend/internal/model"
)

type CreateItineraryRequest struct {
	Name string `validate:"required,max=128" required:"true" json:"name" example:"Kyoto in spring"`
	// Prompts describes the trip the activities will be generated for.
	Prompts          *model.ItineraryPrompts `validate:"required" required:"true" json:"prompts"`
	IsPublic         bool                    `json:"isPublic"`
	MaxPax           int                     `validate:"gte=1,lte=1000" json:"maxPax" example:"4"`
	GenderPreference string                  `validate:"max=32" json:"genderPreference" example:"any"`
	// UserID is the requesting user. They become the itinerary's creator.
	UserID int64 `validate:"required,gt=0" required:"true" json:"userId" example:"1"`
}

// EditItineraryRequest is a partial update: only fields present in the request body are applied.
type EditItineraryRequest struct {
	Name             null.String             `validate:"omitempty,min=1,max=128" json:"name"`
	Prompts          *model.ItineraryPrompts `json:"prompts"`
	IsPublic         null.Bool               `json:"isPublic"`
	MaxPax           null.Int                `validate:"omitempty,gte=1,lte=1000" json:"maxPax"`
	GenderPreference null.String             `validate:"omitempty,max=32" json:"genderPreference"`
}

func (r *EditItineraryRequest) Empty() bool {
	return !r.Name.Valid && r.Prompts == nil && !r.IsPublic.Valid && !r.MaxPax.Valid && !r.GenderPreference.Valid
}

type DeleteConfirmation struct {
	Message     string `json:"message" example:"Kyoto in spring itinerary is successfully deleted"`
	ItineraryID int64  `json:"itineraryId"`
	Name        string `json:"name"`
}
