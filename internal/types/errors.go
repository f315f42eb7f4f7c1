package types

import "errors"

// Sentinel errors for the plan pipeline. Handlers map these onto HTTP status
// codes with errors.Is, so wrap them with %w when adding context.
var (
	// Auth failures.
	ErrAuthNotConfigured = errors.New("authentication system is not configured")
	ErrMissingCredential = errors.New("authorization credential missing")
	ErrExpiredCredential = errors.New("credential has expired")
	ErrInvalidCredential = errors.New("credential is invalid")
	ErrNotAuthorized     = errors.New("credential lacks the required role")

	// Context resolution failures.
	ErrNoTripSource       = errors.New("either bookingId, booking or free_text is required")
	ErrLocationUnresolved = errors.New("could not determine a destination from free text")
	ErrBookingNotFound    = errors.New("booking not found")

	// A collaborator (booking store) could not be reached.
	ErrDependencyUnavailable = errors.New("a required dependency is unreachable")

	// Generation failures are surfaced to the caller, never silently downgraded
	// to the rule-based itinerary.
	ErrGenerationFailed = errors.New("itinerary generation failed")
	ErrGenerationEmpty  = errors.New("itinerary generator returned no usable output")
)
