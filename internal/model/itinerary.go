package model

import (
	"time"

	"github.com/uptrace/bun"
)

// ItineraryPrompts is the trip specification forwarded to the generation service.
// Its content is opaque to the workflow beyond being stored alongside the itinerary.
type ItineraryPrompts struct {
	StartDate string `json:"startDate" validate:"required,isodate"`
	EndDate   string `json:"endDate" validate:"required,isodate"`
	Country   string `json:"country" validate:"required,max=64"`
	Category  string `json:"category" validate:"max=64"`
}

type Itinerary struct {
	bun.BaseModel `bun:"itineraries,alias:it"`

	ItineraryID      int64             `bun:"id,pk,autoincrement" json:"id"`
	Name             string            `bun:",notnull" json:"name"`
	Prompts          *ItineraryPrompts `bun:"type:jsonb" json:"prompts"`
	IsPublic         bool              `bun:",notnull" json:"isPublic"`
	MaxPax           int               `bun:",notnull" json:"maxPax"`
	GenderPreference string            `bun:",notnull" json:"genderPreference"`
	CreatedAt        time.Time         `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt        time.Time         `bun:",nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	Activities []*Activity `bun:"rel:has-many,join:id=itinerary_id" json:"activities,omitempty"`
}
