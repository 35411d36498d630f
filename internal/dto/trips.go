package dto

import "VOYAGEAI_BACK-END/internal/models"

// CreateTripRequest represents the payload to create a trip
type CreateTripRequest struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"` // ISO 8601 format: YYYY-MM-DD or RFC3339
	EndDate     string   `json:"end_date"`   // ISO 8601 format: YYYY-MM-DD or RFC3339
	Budget      *float64 `json:"budget"`
	Currency    string   `json:"currency"`
	Interests   []string `json:"interests"`
	TravelType  string   `json:"travel_type"` // solo | family | friends | couple | business | other
}

// TripResponse represents a trip object in responses
type TripResponse struct {
	ID          string   `json:"id"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Budget      float64  `json:"budget"`
	Currency    string   `json:"currency"`
	Interests   []string `json:"interests"`
	TravelType  string   `json:"travel_type"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// CreateTripResponse envelope
type CreateTripResponse struct {
	Success bool         `json:"success"`
	Trip    TripResponse `json:"trip"`
}

// TripListResponse envelope
type TripListResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Trips   []TripResponse `json:"trips"`
}

// TripDetailResponse envelope: a trip plus its itinerary (null when none
// has been generated yet)
type TripDetailResponse struct {
	Success   bool              `json:"success"`
	Trip      TripResponse      `json:"trip"`
	Itinerary *models.Itinerary `json:"itinerary"`
}
