package itinerary

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"VOYAGEAI_BACK-END/internal/models"
)

// Reference coordinate the synthetic generator scatters locations around.
// A placeholder, not real geocoding.
const (
	referenceLat = 40.7128
	referenceLng = -74.006
	coordSpread  = 0.1
)

// placesByInterest maps lower-cased interest tags to candidate places
var placesByInterest = map[string][]string{
	"museums":      {"National Museum", "Art Gallery", "History Museum", "Cultural Center"},
	"food":         {"Local Market", "Famous Restaurant", "Street Food Tour", "Cooking Class"},
	"architecture": {"Historic Cathedral", "Old Town Square", "Palace Tour", "Heritage Building"},
	"nature":       {"Botanical Garden", "City Park", "Nature Reserve", "Scenic Viewpoint"},
	"shopping":     {"Shopping District", "Local Bazaar", "Artisan Market", "Mall"},
	"adventure":    {"Adventure Park", "Hiking Trail", "Water Sports", "Zip Lining"},
	"culture":      {"Cultural Show", "Traditional Performance", "Local Festival", "Heritage Walk"},
	"nightlife":    {"Rooftop Bar", "Night Market", "Live Music Venue", "Sunset Cruise"},
}

// defaultPlaces is the generic landmark catalog used when a trip has no
// interests or an interest has no catalog entry
var defaultPlaces = []string{
	"City Center",
	"Main Square",
	"Popular Landmark",
	"Scenic Spot",
	"Local Attraction",
	"Famous Monument",
	"Waterfront",
	"Historic District",
}

// placeTypeRules classify a place name into a coarse category by substring
// inspection. Ordered, first match wins. A heuristic, not authoritative.
var placeTypeRules = []struct {
	keywords  []string
	placeType string
}{
	{[]string{"Museum", "Gallery"}, "Museum"},
	{[]string{"Restaurant", "Market", "Food"}, "Restaurant"},
	{[]string{"Park", "Garden"}, "Park"},
	{[]string{"Cathedral", "Palace", "Monument"}, "Landmark"},
	{[]string{"Show", "Performance"}, "Entertainment"},
}

// ClassifyPlace returns the coarse category for a place name, defaulting
// to "Attraction" when no rule matches
func ClassifyPlace(name string) string {
	for _, rule := range placeTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.placeType
			}
		}
	}
	return "Attraction"
}

// SyntheticStrategy produces a complete, schema-valid itinerary without
// any external call. It is both the forced path when no provider is
// configured and the fallback when a provider fails.
type SyntheticStrategy struct {
	rng *rand.Rand
}

// NewSyntheticStrategy creates a synthetic generator. A non-nil rng lets
// tests supply a fixed seed; passing nil seeds from the current time.
func NewSyntheticStrategy(rng *rand.Rand) *SyntheticStrategy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SyntheticStrategy{rng: rng}
}

// Name identifies this strategy in responses and logs
func (s *SyntheticStrategy) Name() string {
	return "mock"
}

// Generate builds a full itinerary for the trip: one day per calendar day
// in the span, three activities per day (Morning, Afternoon, Evening),
// costs derived from the per-day budget with bounded variance, synthetic
// locations around a fixed reference coordinate.
func (s *SyntheticStrategy) Generate(ctx context.Context, trip *models.Trip) (*models.Itinerary, error) {
	dates, err := ExpandDateRange(trip.StartDate, trip.EndDate)
	if err != nil {
		return nil, err
	}

	perDay := PerDayBudget(trip.Budget, len(dates))
	days := make([]models.Day, 0, len(dates))

	for i, date := range dates {
		activities := make([]models.Activity, 0, len(models.GeneratedSlots))
		for idx, slot := range models.GeneratedSlots {
			placeName := fmt.Sprintf("%s in %s", s.pickPlace(trip.Interests, i*3+idx), trip.Destination)

			lat := referenceLat + (s.rng.Float64()-0.5)*coordSpread
			lng := referenceLng + (s.rng.Float64()-0.5)*coordSpread

			activities = append(activities, models.Activity{
				TimeSlot:      slot,
				PlaceName:     placeName,
				PlaceType:     ClassifyPlace(placeName),
				Description:   slotDescription(slot, placeName),
				EstimatedCost: ActivityCost(s.rng, perDay),
				Location: &models.Location{
					Address: fmt.Sprintf("%s, %s", placeName, trip.Destination),
					Lat:     lat,
					Lng:     lng,
					MapURL:  fmt.Sprintf("https://maps.google.com/?q=%f,%f", lat, lng),
				},
			})
		}

		days = append(days, models.Day{
			DayNumber:  i + 1,
			Date:       date,
			Summary:    daySummary(trip, i),
			Activities: activities,
			Notes:      dayNotes(trip.TravelType),
		})
	}

	itin := &models.Itinerary{Days: days}
	itin.RecomputeCosts()
	return itin, nil
}

// pickPlace selects a candidate place name for slot n (n = dayIndex*3 +
// slotIndex). With interests, the focus interest cycles through the list
// and a catalog entry is drawn at random; without interests, or for an
// unknown tag, the generic landmark catalog is indexed directly.
func (s *SyntheticStrategy) pickPlace(interests []string, n int) string {
	if len(interests) > 0 {
		interest := interests[n%len(interests)]
		if places, ok := placesByInterest[strings.ToLower(interest)]; ok {
			return places[s.rng.Intn(len(places))]
		}
		return defaultPlaces[s.rng.Intn(len(defaultPlaces))]
	}
	return defaultPlaces[n%len(defaultPlaces)]
}

func slotDescription(slot, placeName string) string {
	var tail string
	switch slot {
	case models.SlotMorning:
		tail = "Start your day with this amazing experience."
	case models.SlotAfternoon:
		tail = "Perfect afternoon activity to discover local culture."
	default:
		tail = "End your day with this memorable visit."
	}
	return fmt.Sprintf("Explore and enjoy %s. %s", placeName, tail)
}

func daySummary(trip *models.Trip, dayIndex int) string {
	summary := fmt.Sprintf("Day %d: Exploring %s", dayIndex+1, trip.Destination)
	if len(trip.Interests) > 0 {
		summary += fmt.Sprintf(" - Focus on %s", trip.Interests[dayIndex%len(trip.Interests)])
	}
	return summary
}

func dayNotes(travelType string) string {
	base := "Remember to stay hydrated and wear comfortable shoes. "
	switch travelType {
	case "family":
		return base + "Family-friendly activities planned."
	case "couple":
		return base + "Romantic experiences included."
	case "solo":
		return base + "Great opportunities to meet locals."
	default:
		return base + "Enjoy with your travel companions!"
	}
}
