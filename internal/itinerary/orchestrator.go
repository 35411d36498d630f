package itinerary

import (
	"context"
	"log"

	"VOYAGEAI_BACK-END/internal/config"
	"VOYAGEAI_BACK-END/internal/models"
)

// Orchestrator is the entry point for itinerary generation. It selects
// the configured strategy, absorbs provider failures by falling back to
// synthetic generation, and normalizes the result before returning it.
// Callers never see a provider failure as an error; the only generation
// failures that surface are ErrInvalidRange and ErrEmptyItinerary.
type Orchestrator struct {
	cfg       config.AIConfig
	mock      Strategy
	providers map[string]Strategy
}

// NewOrchestrator builds an orchestrator from the AI configuration with
// the standard strategy set
func NewOrchestrator(cfg config.AIConfig) *Orchestrator {
	return &Orchestrator{
		cfg:  cfg,
		mock: NewSyntheticStrategy(nil),
		providers: map[string]Strategy{
			config.AIProviderOpenAI: NewChatStrategy(cfg),
			config.AIProviderGemini: NewCompletionStrategy(cfg),
		},
	}
}

// NewOrchestratorWithStrategies wires explicit strategies, letting tests
// substitute seeded or failing implementations
func NewOrchestratorWithStrategies(cfg config.AIConfig, mock Strategy, providers map[string]Strategy) *Orchestrator {
	return &Orchestrator{cfg: cfg, mock: mock, providers: providers}
}

// Generate produces an itinerary for the trip and reports which provider
// path actually produced it. The trip's date range is validated up front;
// an unusable range is the caller's error and is never retried.
func (o *Orchestrator) Generate(ctx context.Context, trip *models.Trip) (*models.Itinerary, string, error) {
	if _, err := ExpandDateRange(trip.StartDate, trip.EndDate); err != nil {
		return nil, "", err
	}

	itin, provider := o.run(ctx, trip)
	if itin == nil || len(itin.Days) == 0 {
		return nil, "", ErrEmptyItinerary
	}

	normalize(itin, trip)
	return itin, provider, nil
}

// run picks the strategy and executes it. A configured provider that
// fails is logged and masked by a successful synthetic result.
func (o *Orchestrator) run(ctx context.Context, trip *models.Trip) (*models.Itinerary, string) {
	if o.cfg.UseMock() {
		log.Printf("itinerary: using mock generation for trip %s", trip.ID)
		return o.runMock(ctx, trip)
	}

	strategy, ok := o.providers[o.cfg.Provider]
	if !ok {
		log.Printf("itinerary: unknown AI provider %q, using mock", o.cfg.Provider)
		return o.runMock(ctx, trip)
	}

	log.Printf("itinerary: using %s for trip %s", strategy.Name(), trip.ID)
	itin, err := strategy.Generate(ctx, trip)
	if err != nil {
		// Fallback event, observable but non-fatal to the request
		log.Printf("itinerary: %s generation failed, falling back to mock: %v", strategy.Name(), err)
		return o.runMock(ctx, trip)
	}
	return itin, strategy.Name()
}

func (o *Orchestrator) runMock(ctx context.Context, trip *models.Trip) (*models.Itinerary, string) {
	itin, err := o.mock.Generate(ctx, trip)
	if err != nil {
		// Only possible on invalid input, which Generate rejects first
		log.Printf("itinerary: mock generation failed: %v", err)
		return nil, o.mock.Name()
	}
	return itin, o.mock.Name()
}

// normalize enforces the schema invariants the caller relies on: day
// numbers sequential from 1, dates filled from the trip span when the
// source omitted them, non-negative activity costs, and cost aggregates
// recomputed from the activities rather than trusted from the source.
func normalize(itin *models.Itinerary, trip *models.Trip) {
	start := truncateToDay(trip.StartDate)
	for i := range itin.Days {
		itin.Days[i].DayNumber = i + 1
		if itin.Days[i].Date.IsZero() {
			itin.Days[i].Date = start.AddDate(0, 0, i)
		}
		for j := range itin.Days[i].Activities {
			if itin.Days[i].Activities[j].EstimatedCost < 0 {
				itin.Days[i].Activities[j].EstimatedCost = 0
			}
		}
	}
	itin.RecomputeCosts()
}
