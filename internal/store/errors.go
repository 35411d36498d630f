package store

import "errors"

// ErrItineraryNotFound means no itinerary row matched the query
var ErrItineraryNotFound = errors.New("itinerary not found")

// ErrDuplicateItinerary means the unique constraint on trip_id rejected a
// second itinerary for the same trip. Surfaced to callers as a conflict,
// never swallowed; it is the only safeguard against two concurrent
// generation requests racing on one trip.
var ErrDuplicateItinerary = errors.New("itinerary already exists for this trip")
