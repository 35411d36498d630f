package itinerary

import (
	"math"
	"math/rand"
)

// costVariance bounds the randomized spread added to each activity's cost
// so generated days don't come out with three identical figures.
const costVariance = 500

// PerDayBudget distributes a total trip budget across days: each day gets
// the same nominal figure, floor(total/days). Negative budgets are treated
// as zero.
func PerDayBudget(total float64, days int) float64 {
	if days < 1 {
		return 0
	}
	if total < 0 {
		total = 0
	}
	return math.Floor(total / float64(days))
}

// ActivityCost derives one activity's estimated cost from the day's
// nominal budget: a quarter of the day's figure plus a bounded random
// variance. The sum across a day's slots is intentionally not equal to the
// nominal per-day budget; aggregates are recomputed from activity costs.
func ActivityCost(rng *rand.Rand, perDayBudget float64) float64 {
	return math.Floor(perDayBudget/4) + float64(rng.Intn(costVariance))
}
