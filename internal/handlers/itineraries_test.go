package handlers

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VOYAGEAI_BACK-END/internal/config"
	"VOYAGEAI_BACK-END/internal/dto"
	"VOYAGEAI_BACK-END/internal/itinerary"
	"VOYAGEAI_BACK-END/internal/models"
	"VOYAGEAI_BACK-END/internal/store"
	"VOYAGEAI_BACK-END/internal/utils"
)

// fakeTripLoader serves one trip to its owner
type fakeTripLoader struct {
	trip *models.Trip
}

func (f *fakeTripLoader) loadTrip(ctx context.Context, tripID, userID uuid.UUID) (*models.Trip, error) {
	if f.trip != nil && f.trip.ID == tripID && f.trip.UserID == userID {
		return f.trip, nil
	}
	return nil, pgx.ErrNoRows
}

// fakeItineraryStore keeps itineraries in memory keyed by trip id,
// mirroring the real store's fresh-id assignment and unique-per-trip
// constraint. forceConflict makes Create lose the uniqueness race even
// when no record is visible, like a concurrent insert committing first.
type fakeItineraryStore struct {
	byTrip        map[uuid.UUID]*models.Itinerary
	createCalls   int
	forceConflict bool
}

func newFakeItineraryStore() *fakeItineraryStore {
	return &fakeItineraryStore{byTrip: map[uuid.UUID]*models.Itinerary{}}
}

func (f *fakeItineraryStore) Create(ctx context.Context, itin *models.Itinerary) error {
	f.createCalls++
	if f.forceConflict {
		return store.ErrDuplicateItinerary
	}
	if _, exists := f.byTrip[itin.TripID]; exists {
		return store.ErrDuplicateItinerary
	}
	itin.RecomputeCosts()
	itin.ID = uuid.New()
	now := time.Now()
	itin.LastUpdated = now
	itin.CreatedAt = now
	itin.UpdatedAt = now
	f.byTrip[itin.TripID] = itin
	return nil
}

func (f *fakeItineraryStore) GetByTrip(ctx context.Context, tripID uuid.UUID) (*models.Itinerary, error) {
	itin, ok := f.byTrip[tripID]
	if !ok {
		return nil, store.ErrItineraryNotFound
	}
	return itin, nil
}

func (f *fakeItineraryStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Itinerary, error) {
	for _, itin := range f.byTrip {
		if itin.ID == id && itin.UserID == userID {
			return itin, nil
		}
	}
	return nil, store.ErrItineraryNotFound
}

func (f *fakeItineraryStore) UpdateDays(ctx context.Context, id, userID uuid.UUID, days []models.Day) (*models.Itinerary, error) {
	itin, err := f.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	itin.Days = days
	itin.RecomputeCosts()
	return itin, nil
}

func (f *fakeItineraryStore) DeleteByTrip(ctx context.Context, tripID uuid.UUID) error {
	delete(f.byTrip, tripID)
	return nil
}

func (f *fakeItineraryStore) DeleteByID(ctx context.Context, id, userID uuid.UUID) error {
	for tripID, itin := range f.byTrip {
		if itin.ID == id && itin.UserID == userID {
			delete(f.byTrip, tripID)
			return nil
		}
	}
	return store.ErrItineraryNotFound
}

func testTrip(userID uuid.UUID) *models.Trip {
	return &models.Trip{
		ID:          uuid.New(),
		UserID:      userID,
		Destination: "Kyoto, Japan",
		StartDate:   time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, time.October, 3, 0, 0, 0, 0, time.UTC),
		Budget:      60000,
		Currency:    "INR",
		Interests:   []string{"culture", "food"},
		TravelType:  "solo",
	}
}

func newGenerationHandler(trip *models.Trip, itineraries itineraryStore) *ItinerariesHandler {
	cfg := config.AIConfig{Provider: config.AIProviderMock}
	orchestrator := itinerary.NewOrchestratorWithStrategies(cfg,
		itinerary.NewSyntheticStrategy(rand.New(rand.NewSource(1))), nil)
	return NewItinerariesHandler(&fakeTripLoader{trip: trip}, itineraries, orchestrator)
}

func authedRequest(method, target string, userID uuid.UUID) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(r.Context(), utils.UserIDKey, userID)
	return r.WithContext(ctx)
}

func seedItinerary(t *testing.T, itineraries *fakeItineraryStore, trip *models.Trip) uuid.UUID {
	t.Helper()
	existing := &models.Itinerary{
		TripID: trip.ID,
		UserID: trip.UserID,
		Days: []models.Day{
			{DayNumber: 1, Date: trip.StartDate, Activities: []models.Activity{
				{TimeSlot: models.SlotMorning, PlaceName: "Fushimi Inari", EstimatedCost: 0},
			}},
		},
	}
	require.NoError(t, itineraries.Create(context.Background(), existing))
	return existing.ID
}

func TestGenerateItineraryRejectsDuplicate(t *testing.T) {
	userID := uuid.New()
	trip := testTrip(userID)
	itineraries := newFakeItineraryStore()
	existingID := seedItinerary(t, itineraries, trip)
	createsBefore := itineraries.createCalls

	h := newGenerationHandler(trip, itineraries)
	w := httptest.NewRecorder()
	h.GenerateItinerary(w, authedRequest(http.MethodPost, "/api/trips/"+trip.ID.String()+"/itinerary", userID))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, createsBefore, itineraries.createCalls, "no second insert is attempted")
	require.Len(t, itineraries.byTrip, 1)
	assert.Equal(t, existingID, itineraries.byTrip[trip.ID].ID, "the existing record is untouched")
}

func TestGenerateItineraryStoresResult(t *testing.T) {
	userID := uuid.New()
	trip := testTrip(userID)
	itineraries := newFakeItineraryStore()

	h := newGenerationHandler(trip, itineraries)
	w := httptest.NewRecorder()
	h.GenerateItinerary(w, authedRequest(http.MethodPost, "/api/trips/"+trip.ID.String()+"/itinerary", userID))

	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.GenerateItineraryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "mock", resp.AIProvider)
	require.NotNil(t, resp.Itinerary)
	assert.Len(t, resp.Itinerary.Days, 3)

	stored, ok := itineraries.byTrip[trip.ID]
	require.True(t, ok)
	assert.Equal(t, trip.ID, stored.TripID)
	assert.Equal(t, userID, stored.UserID)
	assert.NotEqual(t, uuid.Nil, stored.ID)
}

func TestRegenerateItineraryReplacesWithFreshID(t *testing.T) {
	userID := uuid.New()
	trip := testTrip(userID)
	itineraries := newFakeItineraryStore()
	previousID := seedItinerary(t, itineraries, trip)

	h := newGenerationHandler(trip, itineraries)
	w := httptest.NewRecorder()
	h.RegenerateItinerary(w, authedRequest(http.MethodPost, "/api/trips/"+trip.ID.String()+"/itinerary/regenerate", userID))

	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, itineraries.byTrip, 1, "the old record is replaced, not kept alongside")
	replacement := itineraries.byTrip[trip.ID]
	assert.NotEqual(t, previousID, replacement.ID, "regeneration assigns a fresh id")
	assert.Len(t, replacement.Days, 3)

	var resp dto.GenerateItineraryResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, replacement.ID, resp.Itinerary.ID)
}

func TestGenerateItineraryLosingRacerGetsConflict(t *testing.T) {
	userID := uuid.New()
	trip := testTrip(userID)
	itineraries := newFakeItineraryStore()
	itineraries.forceConflict = true

	h := newGenerationHandler(trip, itineraries)
	w := httptest.NewRecorder()
	h.GenerateItinerary(w, authedRequest(http.MethodPost, "/api/trips/"+trip.ID.String()+"/itinerary", userID))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 1, itineraries.createCalls, "the insert was attempted and lost the race")

	var resp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Conflict", resp.Error)
}

func TestGenerateItineraryUnknownTrip(t *testing.T) {
	userID := uuid.New()
	itineraries := newFakeItineraryStore()

	h := newGenerationHandler(nil, itineraries)
	w := httptest.NewRecorder()
	h.GenerateItinerary(w, authedRequest(http.MethodPost, "/api/trips/"+uuid.NewString()+"/itinerary", userID))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, itineraries.createCalls)
}
