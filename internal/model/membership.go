package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Membership associates a user with an itinerary. At most one membership per
// itinerary carries IsCreator; that user alone may edit or delete the itinerary.
type Membership struct {
	bun.BaseModel `bun:"user_itineraries,alias:ui"`

	UserID      int64     `bun:",pk" json:"userId"`
	ItineraryID int64     `bun:",pk" json:"itineraryId"`
	IsCreator   bool      `bun:",notnull" json:"isCreator"`
	CreatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`

	Itinerary *Itinerary `bun:"rel:belongs-to,join:itinerary_id=id" json:"itinerary,omitempty"`
}
