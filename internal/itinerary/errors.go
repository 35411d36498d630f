package itinerary

import (
	"errors"
	"fmt"
)

// ErrInvalidRange means the trip's date range cannot be expanded: the end
// date precedes the start date or a date is unset. Surfaced to callers as
// a request-validation failure and never retried.
var ErrInvalidRange = errors.New("invalid date range")

// ErrEmptyItinerary means no valid day sequence could be produced even
// after fallback. This is the only generation failure that propagates to
// the API boundary.
var ErrEmptyItinerary = errors.New("generated itinerary is empty")

// ErrMalformedResponse means the provider returned parseable JSON that
// lacks the required non-empty days list. Treated identically to any other
// provider failure: the orchestrator falls back to synthetic generation.
var ErrMalformedResponse = errors.New("malformed provider response")

// ProviderError wraps any failure of the external generative backend:
// network errors, timeouts, non-2xx responses, unparsable output. The
// orchestrator recovers from it locally; it is never user-visible on its
// own.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
