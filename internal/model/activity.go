package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// Activity is a single scheduled event owned by exactly one itinerary.
type Activity struct {
	bun.BaseModel `bun:"activities,alias:act"`

	ActivityID  int64 `bun:"id,pk,autoincrement" json:"id"`
	ItineraryID int64 `bun:",notnull" json:"itineraryId"`

	// Date is the calendar date only, e.g. "2024-05-01".
	Date              string     `bun:",notnull" json:"date"`
	Name              string     `bun:",notnull" json:"name"`
	Description       string     `bun:",notnull" json:"description"`
	Type              string     `bun:",notnull" json:"type"`
	ActivityOrder     int        `bun:",notnull" json:"activityOrder"`
	TimeOfDay         string     `bun:",notnull" json:"timeOfDay"`
	SuggestedDuration string     `bun:",notnull" json:"suggestedDuration"`
	Location          string     `bun:",notnull" json:"location"`
	Latitude          null.Float `bun:"type:double precision" json:"latitude"`
	Longitude         null.Float `bun:"type:double precision" json:"longitude"`
	CreatedAt         time.Time  `bun:",nullzero,notnull,default:current_timestamp" json:"createdAt"`
}
