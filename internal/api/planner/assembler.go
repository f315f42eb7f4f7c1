package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/wanderhost/concierge-agent/internal/types"
)

// ExpandDateRange returns every calendar day of the inclusive range formatted
// as YYYY-MM-DD. A degenerate range still yields the start day.
func ExpandDateRange(r types.DateRange) []string {
	start := truncateToDay(r.Start)
	end := truncateToDay(r.End)
	if end.Before(start) {
		return []string{start.Format(dateLayout)}
	}
	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dateLayout))
	}
	return days
}

type activityTemplate struct {
	titles             [3]string // morning, afternoon, evening
	tags               []string
	wheelchairFriendly bool
	kidFriendly        bool
	description        string // one %s: the location
}

// activityCatalog is the fixed lookup table behind the activity cards.
var activityCatalog = map[string]activityTemplate{
	"museums": {
		titles:             [3]string{"Morning visit to the city museum", "Afternoon gallery and exhibitions", "Evening museum late hours"},
		tags:               []string{"museum", "indoor", "culture"},
		wheelchairFriendly: true,
		kidFriendly:        true,
		description:        "Curated museum stops near the centre of %s.",
	},
	"parks": {
		titles:             [3]string{"Morning stroll through the main park", "Afternoon picnic and gardens", "Evening riverside walk"},
		tags:               []string{"park", "outdoor", "easy"},
		wheelchairFriendly: true,
		kidFriendly:        true,
		description:        "Green spaces and easy walking routes around %s.",
	},
	"art": {
		titles:             [3]string{"Morning at a contemporary art space", "Afternoon street-art walk", "Evening gallery opening"},
		tags:               []string{"art", "indoor", "culture"},
		wheelchairFriendly: true,
		kidFriendly:        false,
		description:        "Art highlights handpicked for %s.",
	},
	"food": {
		titles:             [3]string{"Morning market tasting", "Afternoon food tour", "Evening chef's table dinner"},
		tags:               []string{"food", "tasting", "local"},
		wheelchairFriendly: true,
		kidFriendly:        true,
		description:        "A day of eating your way through %s.",
	},
	"hiking": {
		titles:             [3]string{"Morning trailhead start", "Afternoon viewpoint hike", "Evening recovery dinner"},
		tags:               []string{"hiking", "outdoor", "active"},
		wheelchairFriendly: false,
		kidFriendly:        false,
		description:        "Trails and lookouts within reach of %s.",
	},
	"beach": {
		titles:             [3]string{"Morning beach time", "Afternoon coastal walk", "Evening sunset at the shore"},
		tags:               []string{"beach", "outdoor", "relaxed"},
		wheelchairFriendly: false,
		kidFriendly:        true,
		description:        "Sand, sea and coastline around %s.",
	},
	"history": {
		titles:             [3]string{"Morning old-town walking tour", "Afternoon heritage sites", "Evening historic quarter dinner"},
		tags:               []string{"history", "walking", "culture"},
		wheelchairFriendly: true,
		kidFriendly:        true,
		description:        "The landmarks that shaped %s.",
	},
	"music": {
		titles:             [3]string{"Morning record-shop crawl", "Afternoon live session", "Evening concert or jazz club"},
		tags:               []string{"music", "nightlife", "culture"},
		wheelchairFriendly: true,
		kidFriendly:        false,
		description:        "The local music scene of %s.",
	},
}

const genericActivityDescription = "Local %s experience picked for your time in %s."

const (
	morningDurationMinutes   = 120
	afternoonDurationMinutes = 120
	eveningDurationMinutes   = 150
)

func priceTierFor(budget types.BudgetTier) string {
	switch budget {
	case types.BudgetLow:
		return "$"
	case types.BudgetHigh:
		return "$$$"
	default:
		return "$$"
	}
}

// buildDayPlans produces one DayPlan per trip day, cycling through interests
// by day index. Every day carries exactly three activities: morning,
// afternoon and evening.
func buildDayPlans(trip *types.TripContext, prefs types.PreferenceSet) []types.DayPlan {
	days := ExpandDateRange(trip.Dates)
	priceTier := priceTierFor(prefs.Budget)

	plans := make([]types.DayPlan, 0, len(days))
	for i, day := range days {
		interest := prefs.Interests[i%len(prefs.Interests)]
		template, known := activityCatalog[interest]
		if !known {
			template = activityTemplate{
				titles: [3]string{
					fmt.Sprintf("Morning %s discovery", interest),
					fmt.Sprintf("Afternoon %s highlights", interest),
					fmt.Sprintf("Evening %s experience", interest),
				},
				tags:               []string{interest},
				wheelchairFriendly: true,
				kidFriendly:        true,
				description:        fmt.Sprintf(genericActivityDescription, interest, "%s"),
			}
		}

		durations := [3]int{morningDurationMinutes, afternoonDurationMinutes, eveningDurationMinutes}
		activities := make([]types.ActivityCard, 0, 3)
		for slot := 0; slot < 3; slot++ {
			activities = append(activities, types.ActivityCard{
				Title:              template.titles[slot],
				Address:            trip.Location,
				PriceTier:          priceTier,
				DurationMinutes:    durations[slot],
				Tags:               template.tags,
				WheelchairFriendly: template.wheelchairFriendly || prefs.AccessibilityRequired,
				KidFriendly:        template.kidFriendly || prefs.KidFriendly,
				Description:        fmt.Sprintf(template.description, trip.Location),
			})
		}

		plans = append(plans, types.DayPlan{
			Day:        day,
			Theme:      titleCase(interest),
			Activities: activities,
		})
	}
	return plans
}

func flattenActivityCards(plans []types.DayPlan) []types.ActivityCard {
	cards := make([]types.ActivityCard, 0, len(plans)*3)
	for _, p := range plans {
		cards = append(cards, p.Activities...)
	}
	return cards
}

// buildRestaurantRecommendations reshapes up to three enrichment hits into the
// canonical recommendation shape. With no hits at all, exactly one static
// fallback is emitted so the section is never empty.
func buildRestaurantRecommendations(results []types.SearchResult, prefs types.PreferenceSet, location string) []types.RestaurantRecommendation {
	if len(results) == 0 {
		name := "Local Bistro"
		for _, d := range prefs.DietaryFilters {
			if d == "vegan" {
				name = "Veggie Grill"
				break
			}
		}
		return []types.RestaurantRecommendation{{
			Name:        name,
			Address:     location,
			PriceTier:   "$$",
			Description: "Popular spot with traveler-friendly menus.",
		}}
	}

	limit := 3
	if len(results) < limit {
		limit = len(results)
	}
	recs := make([]types.RestaurantRecommendation, 0, limit)
	for _, r := range results[:limit] {
		recs = append(recs, types.RestaurantRecommendation{
			Name:        r.Title,
			URL:         r.URL,
			PriceTier:   priceTierFor(prefs.Budget),
			Description: r.Snippet,
		})
	}
	return recs
}

// coldMonths get a rain jacket in the checklist, everything else a water bottle.
var coldMonths = map[time.Month]bool{time.December: true, time.January: true, time.February: true}

func buildPackingChecklist(trip *types.TripContext, prefs types.PreferenceSet) []types.PackingChecklistItem {
	items := []types.PackingChecklistItem{
		{Item: "Travel documents", Reason: "ID or passport needed for check-in"},
		{Item: "Comfortable walking shoes", Reason: "days are built around walking"},
		{Item: "Phone charger and power bank", Reason: "navigation and bookings on the go"},
	}
	if prefs.AccessibilityRequired {
		items = append(items, types.PackingChecklistItem{
			Item: "Stroller / mobility aids", Reason: "accessibility requested for this trip",
		})
	}
	if prefs.KidFriendly {
		items = append(items, types.PackingChecklistItem{
			Item: "Snacks and games for the kids", Reason: "traveling with children",
		})
	}
	if len(prefs.DietaryFilters) > 0 {
		items = append(items, types.PackingChecklistItem{
			Item:   "Backup snacks for dietary needs",
			Reason: fmt.Sprintf("dietary filters: %s", strings.Join(prefs.DietaryFilters, ", ")),
		})
	}
	if coldMonths[trip.Dates.Start.Month()] {
		items = append(items, types.PackingChecklistItem{
			Item: "Rain jacket", Reason: "traveling in the cold season",
		})
	} else {
		items = append(items, types.PackingChecklistItem{
			Item: "Reusable water bottle", Reason: "stay hydrated between stops",
		})
	}
	return items
}

// deriveItineraryFromDayPlans rebuilds the legacy block shape from day plans.
// Only used when the generator produced no primary array.
func deriveItineraryFromDayPlans(plans []types.DayPlan) []types.ItineraryBlock {
	blocks := make([]types.ItineraryBlock, 0, len(plans))
	for _, p := range plans {
		blocks = append(blocks, types.ItineraryBlock{
			Day:       p.Day,
			Morning:   []string{p.Activities[0].Title},
			Afternoon: []string{p.Activities[1].Title},
			Evening:   []string{p.Activities[2].Title},
		})
	}
	return blocks
}

type assemblerInput struct {
	trip        *types.TripContext
	prefs       types.PreferenceSet
	blocks      []types.ItineraryBlock
	restaurants []types.SearchResult
	tips        []types.SearchResult
	modelUsed   string
}

// assemblePlan combines resolver, generator and enrichment output into the
// response contract. Missing enrichment degrades into warnings, never errors.
func assemblePlan(in assemblerInput) *types.PlanResponse {
	plans := buildDayPlans(in.trip, in.prefs)

	itinerary := in.blocks
	if len(itinerary) == 0 {
		itinerary = deriveItineraryFromDayPlans(plans)
	}

	var warnings []string
	if len(in.restaurants) == 0 {
		warnings = append(warnings, "restaurant search returned no results; using a static fallback recommendation")
	}
	if len(in.tips) == 0 {
		warnings = append(warnings, "attraction search returned no results")
	}

	return &types.PlanResponse{
		DayPlans:                  plans,
		ActivityCards:             flattenActivityCards(plans),
		Itinerary:                 itinerary,
		Restaurants:               in.restaurants,
		RestaurantRecommendations: buildRestaurantRecommendations(in.restaurants, in.prefs, in.trip.Location),
		PackingChecklist:          buildPackingChecklist(in.trip, in.prefs),
		Tips:                      in.tips,
		Meta: types.PlanMeta{
			Location: in.trip.Location,
			Dates: types.DatesInput{
				Start: in.trip.Dates.Start.Format(dateLayout),
				End:   in.trip.Dates.End.Format(dateLayout),
			},
			Guests: in.trip.GuestCount,
			Party: types.PartyMeta{
				Type: in.trip.PartyType,
				Kids: in.trip.KidsCount,
			},
			ModelUsed:  in.modelUsed,
			NLUDerived: in.trip.NLUDerived(),
		},
		Warnings: warnings,
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
