package types

import (
	"time"

	"github.com/google/uuid"
)

// BookingContext is a booking row joined with its property, as needed to
// resolve a trip context. Nullable columns stay pointers so the resolver can
// apply its own defaulting rules.
type BookingContext struct {
	ID        uuid.UUID  `json:"id"`
	City      string     `json:"city"`
	Country   string     `json:"country"`
	Title     string     `json:"title"` // property name
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Guests    *int       `json:"guests,omitempty"`
}
