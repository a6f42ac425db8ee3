package constant

const (
	// ActivityDateSeparator separates the calendar date from the time-of-day part
	// of the ISO-8601-like timestamps returned by the generation service.
	ActivityDateSeparator = "T"

	ItineraryStreamName = "itinerary-events"

	ItinerarySubjectWildcard = "ITINERARY.*"
	ItinerarySubjectCreated  = "ITINERARY.created"
	ItinerarySubjectDeleted  = "ITINERARY.deleted"

	DeleteConfirmationFormat = "%s itinerary is successfully deleted"
)
