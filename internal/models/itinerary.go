package models

import (
	"time"

	"github.com/google/uuid"
)

// Time slots for activities. Night is accepted by validation but the
// synthetic generator only fills the first three.
const (
	SlotMorning   = "Morning"
	SlotAfternoon = "Afternoon"
	SlotEvening   = "Evening"
	SlotNight     = "Night"
)

// GeneratedSlots are the slots every generated day is filled with, in order
var GeneratedSlots = []string{SlotMorning, SlotAfternoon, SlotEvening}

// IsValidTimeSlot reports whether v is an accepted activity time slot
func IsValidTimeSlot(v string) bool {
	switch v {
	case SlotMorning, SlotAfternoon, SlotEvening, SlotNight:
		return true
	}
	return false
}

// Location is an optional point of interest attached to an activity
type Location struct {
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty"`
	MapURL  string  `json:"map_url,omitempty"`
}

// Activity is a single scheduled place within a time slot of a day
type Activity struct {
	TimeSlot      string    `json:"time_slot"`
	PlaceName     string    `json:"place_name"`
	PlaceType     string    `json:"place_type,omitempty"`
	Description   string    `json:"description,omitempty"`
	EstimatedCost float64   `json:"estimated_cost"`
	Location      *Location `json:"location,omitempty"`
}

// Day is one calendar day of an itinerary
type Day struct {
	DayNumber        int        `json:"day_number"`
	Date             time.Time  `json:"date"`
	Summary          string     `json:"summary,omitempty"`
	Activities       []Activity `json:"activities"`
	Notes            string     `json:"notes,omitempty"`
	EstimatedDayCost float64    `json:"estimated_day_cost"`
}

// Itinerary is the generated day-by-day plan attached to exactly one trip
type Itinerary struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	TripID             uuid.UUID `json:"trip_id" db:"trip_id"`
	UserID             uuid.UUID `json:"user_id" db:"user_id"`
	Days               []Day     `json:"days"`
	TotalEstimatedCost float64   `json:"total_estimated_cost" db:"total_estimated_cost"`
	LastUpdated        time.Time `json:"last_updated" db:"last_updated"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// RecomputeCosts rebuilds every day's estimated cost and the itinerary
// total from the individual activity costs. Negative activity costs are
// clamped to zero first, so after this runs every stored cost is
// non-negative and the total equals the sum of the activities.
// Client-supplied aggregates are never trusted; this runs on every create
// and update.
func (i *Itinerary) RecomputeCosts() {
	total := 0.0
	for d := range i.Days {
		dayCost := 0.0
		for a := range i.Days[d].Activities {
			if i.Days[d].Activities[a].EstimatedCost < 0 {
				i.Days[d].Activities[a].EstimatedCost = 0
			}
			dayCost += i.Days[d].Activities[a].EstimatedCost
		}
		i.Days[d].EstimatedDayCost = dayCost
		total += dayCost
	}
	i.TotalEstimatedCost = total
}
