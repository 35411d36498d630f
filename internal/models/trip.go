package models

import (
	"time"

	"github.com/google/uuid"
)

// TravelTypes are the accepted values for Trip.TravelType
var TravelTypes = []string{"solo", "family", "friends", "couple", "business", "other"}

// IsValidTravelType reports whether v is an accepted travel type
func IsValidTravelType(v string) bool {
	for _, t := range TravelTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Trip represents a travel request created by a user
type Trip struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Destination string    `json:"destination" db:"destination"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	Budget      float64   `json:"budget" db:"budget"`
	Currency    string    `json:"currency" db:"currency"`
	Interests   []string  `json:"interests" db:"interests"`
	TravelType  string    `json:"travel_type" db:"travel_type"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
