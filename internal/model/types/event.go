package types

import "time"

type ItineraryEventKind string

const (
	ItineraryEventCreated ItineraryEventKind = "created"
	ItineraryEventDeleted ItineraryEventKind = "deleted"
)

// ItineraryEvent is published to JetStream after an itinerary lifecycle change commits.
type ItineraryEvent struct {
	Kind          ItineraryEventKind `json:"kind"`
	ItineraryID   int64              `json:"itineraryId"`
	UserID        int64              `json:"userId"`
	Name          string             `json:"name"`
	ActivityCount int                `json:"activityCount,omitempty"`
	OccurredAt    time.Time          `json:"occurredAt"`
}
