package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wanderhost/concierge-agent/internal/api/booking"
	"github.com/wanderhost/concierge-agent/internal/types"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// ContextResolver builds exactly one TripContext per request, trying sources
// in priority order: stored booking id, inline booking object, free text.
type ContextResolver struct {
	logger      *slog.Logger
	bookingRepo booking.Repository
	now         func() time.Time
}

func NewContextResolver(bookingRepo booking.Repository, logger *slog.Logger) *ContextResolver {
	return &ContextResolver{
		logger:      logger,
		bookingRepo: bookingRepo,
		now:         time.Now,
	}
}

// Resolve returns the trip context plus, on the free-text path, the extracted
// signals the preference normalizer folds in as defaults.
func (r *ContextResolver) Resolve(ctx context.Context, req *types.PlanRequest) (*types.TripContext, *FreeTextSignals, error) {
	switch {
	case req.BookingID != "":
		trip, err := r.resolveFromBookingID(ctx, req.BookingID)
		return trip, nil, err
	case req.Booking != nil:
		trip, err := r.resolveFromInlineBooking(req)
		return trip, nil, err
	case strings.TrimSpace(req.FreeText) != "":
		return r.resolveFromFreeText(req)
	default:
		return nil, nil, types.ErrNoTripSource
	}
}

func (r *ContextResolver) resolveFromBookingID(ctx context.Context, id string) (*types.TripContext, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		// An id that can never match a record reads the same as an absent one.
		r.logger.WarnContext(ctx, "Unparseable booking id", slog.String("booking_id", id))
		return nil, types.ErrBookingNotFound
	}

	bc, err := r.bookingRepo.GetBookingContext(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: booking store: %s", types.ErrDependencyUnavailable, err)
	}
	if bc == nil {
		return nil, types.ErrBookingNotFound
	}

	location := joinLocation(bc.City, bc.Country)
	if location == "" {
		location = bc.Title
	}

	now := r.now()
	start := truncateToDay(now.AddDate(0, 0, 1))
	if bc.StartDate != nil {
		start = truncateToDay(*bc.StartDate)
	}
	end := truncateToDay(now.AddDate(0, 0, 3))
	if bc.EndDate != nil {
		end = truncateToDay(*bc.EndDate)
	}
	if end.Before(start) {
		end = start
	}

	guests := 2
	if bc.Guests != nil && *bc.Guests > 0 {
		guests = *bc.Guests
	}

	return &types.TripContext{
		Location:   location,
		Dates:      types.DateRange{Start: start, End: end},
		GuestCount: guests,
		PartyType:  types.PartyUnknown,
		Source:     types.TripSourceBookingID,
	}, nil
}

func (r *ContextResolver) resolveFromInlineBooking(req *types.PlanRequest) (*types.TripContext, error) {
	b := req.Booking
	location := strings.TrimSpace(b.Location)
	if location == "" {
		return nil, fmt.Errorf("%w: inline booking has no location", types.ErrNoTripSource)
	}

	now := r.now()
	start := truncateToDay(now.AddDate(0, 0, 1))
	end := truncateToDay(now.AddDate(0, 0, 3))
	if b.Dates != nil {
		if parsed, err := parseCalendarDate(b.Dates.Start); err == nil {
			start = parsed
		}
		if parsed, err := parseCalendarDate(b.Dates.End); err == nil {
			end = parsed
		}
	}
	if end.Before(start) {
		end = start
	}

	guests := 2
	if b.Guests > 0 {
		guests = b.Guests
	}

	party := types.PartyUnknown
	kids := 0
	if b.Party != nil {
		party = parsePartyType(b.Party.Type)
		if b.Party.Kids > 0 {
			kids = b.Party.Kids
		}
	}

	return &types.TripContext{
		Location:   location,
		Dates:      types.DateRange{Start: start, End: end},
		GuestCount: guests,
		PartyType:  party,
		KidsCount:  kids,
		Source:     types.TripSourceInlineBooking,
	}, nil
}

func (r *ContextResolver) resolveFromFreeText(req *types.PlanRequest) (*types.TripContext, *FreeTextSignals, error) {
	signals := ExtractFreeTextSignals(req.FreeText, r.now())
	if signals.Location == "" {
		return nil, nil, types.ErrLocationUnresolved
	}

	start, end := signals.Start, signals.End
	// Explicit dates from the caller override the text-derived anchor.
	if req.Preferences != nil && req.Preferences.Dates != nil {
		if parsed, err := parseCalendarDate(req.Preferences.Dates.Start); err == nil {
			start = parsed
		}
		if parsed, err := parseCalendarDate(req.Preferences.Dates.End); err == nil {
			end = parsed
		}
		if end.Before(start) {
			end = start
		}
	}

	return &types.TripContext{
		Location:   signals.Location,
		Dates:      types.DateRange{Start: start, End: end},
		GuestCount: 2,
		PartyType:  signals.PartyType,
		KidsCount:  signals.KidsCount,
		Source:     types.TripSourceFreeText,
	}, &signals, nil
}

// joinLocation composes "City, Country" omitting empty parts.
func joinLocation(city, country string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{city, country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// parseCalendarDate accepts YYYY-MM-DD, tolerating a trailing time component.
func parseCalendarDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if len(value) > len(dateLayout) {
		value = value[:len(dateLayout)]
	}
	return time.Parse(dateLayout, value)
}

func parsePartyType(raw string) types.PartyType {
	switch types.PartyType(strings.ToLower(strings.TrimSpace(raw))) {
	case types.PartyCouple:
		return types.PartyCouple
	case types.PartyFamily:
		return types.PartyFamily
	case types.PartyFriends:
		return types.PartyFriends
	}
	return types.PartyUnknown
}
