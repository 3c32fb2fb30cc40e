package service

import "errors"

// Error taxonomy surfaced to the API layer. Conflicts are caller-correctable
// and never retried here; NotFound and precondition failures are surfaced
// verbatim; ErrChainUnreachable means the caller should retry later.
var (
	ErrInvalidAddress      = errors.New("invalid wallet address")
	ErrAddressAlreadyBound = errors.New("wallet address already bound to another account")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrTripNotFound        = errors.New("trip not found")
	ErrTripNotActive       = errors.New("trip is not active")
	ErrItineraryNotFound   = errors.New("itinerary not found")
	ErrItineraryNotForTrip = errors.New("itinerary does not belong to this trip")
	ErrAlreadySettled      = errors.New("trip already settled")
	ErrChainUnreachable    = errors.New("chain head unreachable")
)
