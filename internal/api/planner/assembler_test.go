package planner

import (
	"testing"
	"time"

	"github.com/wanderhost/concierge-agent/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tripForDays(start, end time.Time) *types.TripContext {
	return &types.TripContext{
		Location:   "Lisbon, Portugal",
		Dates:      types.DateRange{Start: start, End: end},
		GuestCount: 2,
		PartyType:  types.PartyCouple,
		Source:     types.TripSourceInlineBooking,
	}
}

func TestExpandDateRange(t *testing.T) {
	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	days := ExpandDateRange(types.DateRange{Start: start, End: start.AddDate(0, 0, 2)})
	assert.Equal(t, []string{"2025-06-02", "2025-06-03", "2025-06-04"}, days)

	single := ExpandDateRange(types.DateRange{Start: start, End: start})
	assert.Equal(t, []string{"2025-06-02"}, single)

	inverted := ExpandDateRange(types.DateRange{Start: start, End: start.AddDate(0, 0, -5)})
	assert.Equal(t, []string{"2025-06-02"}, inverted, "degenerate range still yields the start day")
}

func TestBuildDayPlans_ThreeActivitiesPerDay(t *testing.T) {
	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	trip := tripForDays(start, start.AddDate(0, 0, 3))
	prefs := types.PreferenceSet{Interests: []string{"museums", "food"}, Budget: types.BudgetMid}

	plans := buildDayPlans(trip, prefs)
	require.Len(t, plans, 4)

	for _, p := range plans {
		require.Len(t, p.Activities, 3)
		assert.Equal(t, 120, p.Activities[0].DurationMinutes)
		assert.Equal(t, 120, p.Activities[1].DurationMinutes)
		assert.Equal(t, 150, p.Activities[2].DurationMinutes)
		for _, a := range p.Activities {
			assert.Equal(t, "$$", a.PriceTier)
			assert.Equal(t, trip.Location, a.Address)
		}
	}

	// Interests cycle round-robin by day index.
	assert.Equal(t, "Museums", plans[0].Theme)
	assert.Equal(t, "Food", plans[1].Theme)
	assert.Equal(t, "Museums", plans[2].Theme)
	assert.Equal(t, "Food", plans[3].Theme)
}

func TestBuildDayPlans_UnknownInterestGetsGenericTemplate(t *testing.T) {
	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	trip := tripForDays(start, start)
	prefs := types.PreferenceSet{Interests: []string{"astronomy"}, Budget: types.BudgetLow}

	plans := buildDayPlans(trip, prefs)
	require.Len(t, plans, 1)
	assert.Equal(t, "Astronomy", plans[0].Theme)
	assert.Contains(t, plans[0].Activities[0].Description, "astronomy")
	assert.Contains(t, plans[0].Activities[0].Description, trip.Location)
	assert.Equal(t, "$", plans[0].Activities[0].PriceTier)
}

func TestBuildDayPlans_PreferenceFlagsUpgradeCards(t *testing.T) {
	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	trip := tripForDays(start, start)
	// Hiking cards are neither wheelchair nor kid friendly by template.
	prefs := types.PreferenceSet{
		Interests:             []string{"hiking"},
		Budget:                types.BudgetMid,
		AccessibilityRequired: true,
		KidFriendly:           true,
	}

	plans := buildDayPlans(trip, prefs)
	for _, a := range plans[0].Activities {
		assert.True(t, a.WheelchairFriendly)
		assert.True(t, a.KidFriendly)
	}
}

func TestBuildRestaurantRecommendations_ReshapesFirstThree(t *testing.T) {
	results := []types.SearchResult{
		{Title: "A", URL: "https://a", Snippet: "sa"},
		{Title: "B", URL: "https://b", Snippet: "sb"},
		{Title: "C", URL: "https://c", Snippet: "sc"},
		{Title: "D", URL: "https://d", Snippet: "sd"},
	}
	recs := buildRestaurantRecommendations(results, types.PreferenceSet{Budget: types.BudgetHigh}, "Lisbon")
	require.Len(t, recs, 3)
	assert.Equal(t, "A", recs[0].Name)
	assert.Equal(t, "https://c", recs[2].URL)
	assert.Equal(t, "$$$", recs[0].PriceTier)
}

func TestBuildRestaurantRecommendations_Fallback(t *testing.T) {
	plain := buildRestaurantRecommendations(nil, types.PreferenceSet{}, "Lisbon")
	require.Len(t, plain, 1)
	assert.Equal(t, "Local Bistro", plain[0].Name)
	assert.Equal(t, "Lisbon", plain[0].Address)

	vegan := buildRestaurantRecommendations(nil, types.PreferenceSet{DietaryFilters: []string{"vegan"}}, "Lisbon")
	require.Len(t, vegan, 1)
	assert.Equal(t, "Veggie Grill", vegan[0].Name)
}

func TestBuildPackingChecklist(t *testing.T) {
	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	itemNames := func(items []types.PackingChecklistItem) []string {
		names := make([]string, 0, len(items))
		for _, i := range items {
			names = append(names, i.Item)
		}
		return names
	}

	base := buildPackingChecklist(tripForDays(start, start), types.PreferenceSet{})
	names := itemNames(base)
	assert.Contains(t, names, "Travel documents")
	assert.Contains(t, names, "Comfortable walking shoes")
	assert.Contains(t, names, "Phone charger and power bank")
	assert.Contains(t, names, "Reusable water bottle")
	assert.NotContains(t, names, "Rain jacket")

	winterStart := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	winter := buildPackingChecklist(tripForDays(winterStart, winterStart), types.PreferenceSet{})
	assert.Contains(t, itemNames(winter), "Rain jacket")

	full := buildPackingChecklist(tripForDays(start, start), types.PreferenceSet{
		AccessibilityRequired: true,
		KidFriendly:           true,
		DietaryFilters:        []string{"vegan"},
	})
	fullNames := itemNames(full)
	assert.Contains(t, fullNames, "Stroller / mobility aids")
	assert.Contains(t, fullNames, "Snacks and games for the kids")
	assert.Contains(t, fullNames, "Backup snacks for dietary needs")
}

func TestAssemblePlan_DerivesLegacyItineraryWhenBlocksMissing(t *testing.T) {
	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	resp := assemblePlan(assemblerInput{
		trip:      tripForDays(start, start.AddDate(0, 0, 1)),
		prefs:     types.PreferenceSet{Interests: []string{"parks"}, Budget: types.BudgetMid},
		modelUsed: "rule-based",
	})

	require.Len(t, resp.Itinerary, 2)
	assert.Equal(t, resp.DayPlans[0].Activities[0].Title, resp.Itinerary[0].Morning[0])
	assert.Equal(t, resp.DayPlans[1].Activities[2].Title, resp.Itinerary[1].Evening[0])
}

func TestAssemblePlan_WarningsForEmptyEnrichment(t *testing.T) {
	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	resp := assemblePlan(assemblerInput{
		trip:  tripForDays(start, start),
		prefs: types.PreferenceSet{Interests: []string{"parks"}, Budget: types.BudgetMid},
	})

	assert.Len(t, resp.Warnings, 2)
	require.Len(t, resp.RestaurantRecommendations, 1)
	assert.Equal(t, "Local Bistro", resp.RestaurantRecommendations[0].Name)
}

func TestAssemblePlan_KeepsGeneratorBlocksAndEnrichment(t *testing.T) {
	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	blocks := []types.ItineraryBlock{{Day: "2025-06-02", Morning: []string{"Generated stop"}}}
	resp := assemblePlan(assemblerInput{
		trip:        tripForDays(start, start),
		prefs:       types.PreferenceSet{Interests: []string{"parks"}, Budget: types.BudgetMid},
		blocks:      blocks,
		restaurants: []types.SearchResult{{Title: "Tasca", URL: "https://t"}},
		tips:        []types.SearchResult{{Title: "Guide", URL: "https://g"}},
		modelUsed:   "gemini-2.0-flash",
	})

	assert.Equal(t, blocks, resp.Itinerary)
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, "gemini-2.0-flash", resp.Meta.ModelUsed)
	assert.Equal(t, "2025-06-02", resp.Meta.Dates.Start)
	require.Len(t, resp.RestaurantRecommendations, 1)
	assert.Equal(t, "Tasca", resp.RestaurantRecommendations[0].Name)
}
