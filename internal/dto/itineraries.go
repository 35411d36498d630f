package dto

import "VOYAGEAI_BACK-END/internal/models"

// CreateItineraryRequest represents the payload to create an itinerary
// manually from a prepared day sequence
type CreateItineraryRequest struct {
	TripID string       `json:"trip_id"`
	Days   []models.Day `json:"days"`
}

// UpdateItineraryRequest represents the payload to replace an itinerary's
// day sequence. Cost aggregates are recomputed server-side; any totals in
// the payload are ignored.
type UpdateItineraryRequest struct {
	Days []models.Day `json:"days"`
}

// ItineraryResponse envelope
type ItineraryResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	Itinerary *models.Itinerary `json:"itinerary"`
}

// GenerateItineraryResponse envelope carries the provider tag indicating
// which path actually produced the result (mock/openai/gemini)
type GenerateItineraryResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Itinerary  *models.Itinerary `json:"itinerary"`
	AIProvider string            `json:"ai_provider"`
}
