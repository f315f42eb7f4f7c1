package types

import "time"

// PartyType classifies the traveling group.
type PartyType string

const (
	PartyCouple  PartyType = "couple"
	PartyFamily  PartyType = "family"
	PartyFriends PartyType = "friends"
	PartyUnknown PartyType = "unknown"
)

// BudgetTier is the normalized spending level for recommendations.
type BudgetTier string

const (
	BudgetLow  BudgetTier = "low"
	BudgetMid  BudgetTier = "mid"
	BudgetHigh BudgetTier = "high"
)

// TripSource records which request input produced the trip context.
type TripSource string

const (
	TripSourceBookingID     TripSource = "bookingId"
	TripSourceInlineBooking TripSource = "inlineBooking"
	TripSourceFreeText      TripSource = "freeText"
)

// DateRange is an inclusive calendar range, invariant Start <= End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// TripContext holds the resolved trip parameters. It is built exactly once per
// request by the context resolver and is immutable afterwards.
type TripContext struct {
	Location   string // "City, Country" or bare "City", never empty
	Dates      DateRange
	GuestCount int // >= 1
	PartyType  PartyType
	KidsCount  int // >= 0
	Source     TripSource
}

// NLUDerived reports whether the context came from free-text extraction rather
// than a booking record. Exposed in response metadata.
func (c TripContext) NLUDerived() bool {
	return c.Source == TripSourceFreeText
}

// PreferenceSet is the normalized preference view consumed by the generator,
// the enrichment queries and the assembler.
type PreferenceSet struct {
	DietaryFilters        []string // deduplicated, lower-cased, first-seen order
	Interests             []string // order matters: cycled through trip days
	Budget                BudgetTier
	AccessibilityRequired bool
	KidFriendly           bool
}

// PlanRequest is the body of POST /agent/plan.
type PlanRequest struct {
	BookingID   string          `json:"bookingId,omitempty"`
	Booking     *BookingInput   `json:"booking,omitempty"`
	Preferences *RawPreferences `json:"preferences,omitempty"`
	FreeText    string          `json:"free_text,omitempty"`
}

// BookingInput is the inline booking shape clients may send instead of an id.
type BookingInput struct {
	Location string      `json:"location"`
	Dates    *DatesInput `json:"dates,omitempty"`
	Guests   int         `json:"guests,omitempty"`
	Party    *PartyInput `json:"party,omitempty"`
}

type DatesInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type PartyInput struct {
	Type string `json:"type"`
	Kids int    `json:"kids"`
}

// RawPreferences is the loosely-typed preference input as sent by clients.
// Dietary accepts either a single string or a list of strings.
type RawPreferences struct {
	Dietary   any         `json:"dietary,omitempty"`
	Interests []string    `json:"interests,omitempty"`
	Budget    string      `json:"budget,omitempty"`
	Mobility  string      `json:"mobility,omitempty"`
	Dates     *DatesInput `json:"dates,omitempty"`
}

// DayPlan is one calendar day of the assembled itinerary.
type DayPlan struct {
	Day        string         `json:"day"` // YYYY-MM-DD
	Theme      string         `json:"theme"`
	Activities []ActivityCard `json:"activities"` // always morning, afternoon, evening
}

// ActivityCard is a single recommended time-block.
type ActivityCard struct {
	Title              string   `json:"title"`
	Address            string   `json:"address"`
	PriceTier          string   `json:"priceTier"`
	DurationMinutes    int      `json:"durationMinutes"`
	Tags               []string `json:"tags"`
	WheelchairFriendly bool     `json:"wheelchairFriendly"`
	KidFriendly        bool     `json:"kidFriendly"`
	Description        string   `json:"description"`
}

// RestaurantRecommendation is the canonical dining recommendation shape.
type RestaurantRecommendation struct {
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	URL         string `json:"url,omitempty"`
	PriceTier   string `json:"priceTier"`
	Description string `json:"description,omitempty"`
}

type PackingChecklistItem struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

// ItineraryBlock is the legacy itinerary shape the frontend panel consumes,
// and the shape the generative backend is instructed to return.
type ItineraryBlock struct {
	Day       string   `json:"day"`
	Morning   []string `json:"morning"`
	Afternoon []string `json:"afternoon"`
	Evening   []string `json:"evening"`
}

// SearchResult is one normalized hit from the external search backend.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// PlanResponse is the body of a successful plan request.
type PlanResponse struct {
	DayPlans                  []DayPlan                  `json:"dayPlans"`
	ActivityCards             []ActivityCard             `json:"activityCards"`
	Itinerary                 []ItineraryBlock           `json:"itinerary"`
	Restaurants               []SearchResult             `json:"restaurants"`
	RestaurantRecommendations []RestaurantRecommendation `json:"restaurantRecommendations"`
	PackingChecklist          []PackingChecklistItem     `json:"packingChecklist"`
	Tips                      []SearchResult             `json:"tips"`
	Meta                      PlanMeta                   `json:"meta"`
	Warnings                  []string                   `json:"warnings,omitempty"`
}

type PlanMeta struct {
	Location   string     `json:"location"`
	Dates      DatesInput `json:"dates"`
	Guests     int        `json:"guests"`
	Party      PartyMeta  `json:"party"`
	ModelUsed  string     `json:"model_used"`
	NLUDerived bool       `json:"nluDerived"`
}

type PartyMeta struct {
	Type PartyType `json:"type"`
	Kids int       `json:"kids"`
}
