package chatgen

import (
	"fmt"
	"strings"

	"github.com/tripmates/itinerary-backend/internal/model"
)

const systemPrompt = "You are a travel planner. Reply with a JSON array only, without any commentary."

// BuildPrompt renders the user message for a trip.
func BuildPrompt(prompts *model.ItineraryPrompts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a trip to %s from %s to %s.", prompts.Country, prompts.StartDate, prompts.EndDate)
	if prompts.Category != "" {
		fmt.Fprintf(&b, " Focus on %s activities.", prompts.Category)
	}
	b.WriteString(" Return a JSON array where each element is an object with the keys")
	b.WriteString(` "date" (ISO 8601), "name", "description", "type", "activity_order" (integer starting at 1 within each day),`)
	b.WriteString(` "time_of_day", "suggested_duration", "location", "latitude" and "longitude" (numbers).`)
	return b.String()
}
