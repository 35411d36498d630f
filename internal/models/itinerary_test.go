package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeCosts(t *testing.T) {
	itin := &Itinerary{
		TotalEstimatedCost: 12345, // stale, must be rebuilt
		Days: []Day{
			{
				EstimatedDayCost: 99999,
				Activities: []Activity{
					{TimeSlot: SlotMorning, PlaceName: "A", EstimatedCost: 100},
					{TimeSlot: SlotAfternoon, PlaceName: "B", EstimatedCost: 250.5},
					{TimeSlot: SlotEvening, PlaceName: "C", EstimatedCost: -40},
				},
			},
			{
				Activities: []Activity{
					{TimeSlot: SlotMorning, PlaceName: "D", EstimatedCost: 0},
				},
			},
		},
	}

	itin.RecomputeCosts()

	assert.Equal(t, 0.0, itin.Days[0].Activities[2].EstimatedCost, "negative cost is clamped to zero")
	assert.Equal(t, 350.5, itin.Days[0].EstimatedDayCost)
	assert.Equal(t, 0.0, itin.Days[1].EstimatedDayCost)
	assert.Equal(t, 350.5, itin.TotalEstimatedCost)
}

func TestRecomputeCostsTotalMatchesActivities(t *testing.T) {
	itin := &Itinerary{
		Days: []Day{
			{Activities: []Activity{
				{TimeSlot: SlotMorning, PlaceName: "A", EstimatedCost: -120},
				{TimeSlot: SlotAfternoon, PlaceName: "B", EstimatedCost: 80},
			}},
		},
	}

	itin.RecomputeCosts()

	sum := 0.0
	for _, day := range itin.Days {
		for _, a := range day.Activities {
			assert.GreaterOrEqual(t, a.EstimatedCost, 0.0)
			sum += a.EstimatedCost
		}
	}
	assert.Equal(t, sum, itin.TotalEstimatedCost)
}

func TestRecomputeCostsEmpty(t *testing.T) {
	itin := &Itinerary{TotalEstimatedCost: 500}
	itin.RecomputeCosts()
	assert.Equal(t, 0.0, itin.TotalEstimatedCost)
}

func TestIsValidTimeSlot(t *testing.T) {
	for _, slot := range []string{SlotMorning, SlotAfternoon, SlotEvening, SlotNight} {
		assert.True(t, IsValidTimeSlot(slot))
	}
	assert.False(t, IsValidTimeSlot("morning"))
	assert.False(t, IsValidTimeSlot("Midnight"))
	assert.False(t, IsValidTimeSlot(""))
}
