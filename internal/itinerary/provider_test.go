package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleItineraryJSON = `{
  "days": [
    {
      "dayNumber": 1,
      "date": "2024-07-01",
      "summary": "Beach day",
      "activities": [
        {
          "timeSlot": "Morning",
          "placeName": "Kuta Beach",
          "placeType": "Park",
          "description": "Morning swim",
          "estimatedCost": 500,
          "location": {"address": "Kuta, Bali", "lat": -8.7, "lng": 115.2, "mapUrl": "https://maps.google.com/?q=-8.7,115.2"}
        },
        {
          "timeSlot": "Afternoon",
          "placeName": "Beach Club",
          "placeType": "Restaurant",
          "description": "Lunch",
          "estimatedCost": 1500
        },
        {
          "timeSlot": "Evening",
          "placeName": "Sunset Point",
          "placeType": "Attraction",
          "description": "Sunset",
          "estimatedCost": 0
        }
      ],
      "notes": "Bring sunscreen"
    }
  ]
}`

func chatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func testChatStrategy(url string) *ChatStrategy {
	return &ChatStrategy{
		apiKey:   "test-key",
		model:    "gpt-3.5-turbo",
		endpoint: url,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func TestChatStrategyGenerate(t *testing.T) {
	srv := chatServer(t, sampleItineraryJSON, http.StatusOK)
	defer srv.Close()

	trip := baliTrip()
	trip.EndDate = trip.StartDate // single day

	itin, err := testChatStrategy(srv.URL).Generate(context.Background(), trip)
	require.NoError(t, err)
	require.Len(t, itin.Days, 1)

	day := itin.Days[0]
	assert.Equal(t, 1, day.DayNumber)
	assert.Equal(t, date(2024, 7, 1), day.Date)
	require.Len(t, day.Activities, 3)
	assert.Equal(t, "Kuta Beach", day.Activities[0].PlaceName)
	require.NotNil(t, day.Activities[0].Location)
	assert.Equal(t, "https://maps.google.com/?q=-8.7,115.2", day.Activities[0].Location.MapURL)

	// Aggregates are recomputed from activities, never trusted
	assert.Equal(t, 2000.0, day.EstimatedDayCost)
	assert.Equal(t, 2000.0, itin.TotalEstimatedCost)
}

func TestChatStrategyStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + sampleItineraryJSON + "\n```"
	srv := chatServer(t, fenced, http.StatusOK)
	defer srv.Close()

	itin, err := testChatStrategy(srv.URL).Generate(context.Background(), baliTrip())
	require.NoError(t, err)
	assert.NotEmpty(t, itin.Days)
}

func TestChatStrategyExtractsJSONFromProse(t *testing.T) {
	wrapped := "Here is your itinerary:\n" + sampleItineraryJSON + "\nEnjoy your trip!"
	srv := chatServer(t, wrapped, http.StatusOK)
	defer srv.Close()

	itin, err := testChatStrategy(srv.URL).Generate(context.Background(), baliTrip())
	require.NoError(t, err)
	assert.NotEmpty(t, itin.Days)
}

func TestChatStrategyNoJSONInResponse(t *testing.T) {
	srv := chatServer(t, "Sorry, I cannot help with that.", http.StatusOK)
	defer srv.Close()

	_, err := testChatStrategy(srv.URL).Generate(context.Background(), baliTrip())
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "openai", perr.Provider)
}

func TestChatStrategyMissingDays(t *testing.T) {
	srv := chatServer(t, `{"plan": "none"}`, http.StatusOK)
	defer srv.Close()

	_, err := testChatStrategy(srv.URL).Generate(context.Background(), baliTrip())
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestChatStrategyHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testChatStrategy(srv.URL).Generate(context.Background(), baliTrip())
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "429")
}

func TestChatStrategyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	s := testChatStrategy(srv.URL)
	s.client.Timeout = 20 * time.Millisecond

	_, err := s.Generate(context.Background(), baliTrip())
	var perr *ProviderError
	assert.ErrorAs(t, err, &perr)
}

func TestChatStrategyInvalidRangeBeforeCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected for an invalid range")
	}))
	defer srv.Close()

	trip := baliTrip()
	trip.StartDate = date(2024, 7, 10)
	trip.EndDate = date(2024, 7, 1)

	_, err := testChatStrategy(srv.URL).Generate(context.Background(), trip)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCompletionStrategyGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash:generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"parts": []map[string]string{{"text": "```json\n" + sampleItineraryJSON + "\n```"}},
				}},
			},
		})
	}))
	defer srv.Close()

	s := &CompletionStrategy{
		apiKey:  "test-key",
		model:   "gemini-1.5-flash",
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	itin, err := s.Generate(context.Background(), baliTrip())
	require.NoError(t, err)
	require.Len(t, itin.Days, 1)
	assert.Equal(t, 2000.0, itin.TotalEstimatedCost)
}

func TestCompletionStrategyNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates": []}`)
	}))
	defer srv.Close()

	s := &CompletionStrategy{
		apiKey:  "test-key",
		model:   "gemini-1.5-flash",
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	_, err := s.Generate(context.Background(), baliTrip())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseProviderItineraryDerivesMissingDates(t *testing.T) {
	raw := `{"days": [
        {"dayNumber": 1, "date": "not-a-date", "activities": []},
        {"dayNumber": 2, "date": "", "activities": []}
    ]}`

	itin, err := parseProviderItinerary("openai", raw, date(2024, 7, 1))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 7, 1), itin.Days[0].Date)
	assert.Equal(t, date(2024, 7, 2), itin.Days[1].Date)
}

func TestProviderErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ProviderError{Provider: "openai", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "openai")
}
