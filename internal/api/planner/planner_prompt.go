package planner

import (
	"fmt"
	"strings"

	"github.com/wanderhost/concierge-agent/internal/types"
)

func getItineraryPrompt(location, startDate string, durationDays int, preferences string) string {
	return fmt.Sprintf(`
            You are an expert travel agent. Create a detailed day-by-day itinerary for a trip to %s for %d days.
            The traveler has the following preferences: %s

            Return the response STRICTLY as a JSON array of objects, where each object represents a day and has the following keys:
            - "day": "YYYY-MM-DD" (calculate based on start date: %s)
            - "morning": ["activity 1", "activity 2"]
            - "afternoon": ["activity 1", "activity 2"]
            - "evening": ["activity 1", "activity 2"]

            Do not include any markdown formatting (like %s) or extra text. Just the raw JSON array.`,
		location, durationDays, preferences, startDate, "```json")
}

// summarizePreferences flattens the normalized preference set into the prose
// summary the prompt embeds.
func summarizePreferences(prefs types.PreferenceSet) string {
	var b strings.Builder
	if len(prefs.DietaryFilters) > 0 {
		fmt.Fprintf(&b, "Dietary: %s. ", strings.Join(prefs.DietaryFilters, ", "))
	}
	if len(prefs.Interests) > 0 {
		fmt.Fprintf(&b, "Interests: %s. ", strings.Join(prefs.Interests, ", "))
	}
	fmt.Fprintf(&b, "Budget: %s.", prefs.Budget)
	if prefs.AccessibilityRequired {
		b.WriteString(" Accessibility: wheelchair/stroller friendly, no long hikes.")
	}
	if prefs.KidFriendly {
		b.WriteString(" Traveling with kids.")
	}
	return b.String()
}
