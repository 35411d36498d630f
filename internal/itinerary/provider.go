package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"VOYAGEAI_BACK-END/internal/config"
	"VOYAGEAI_BACK-END/internal/models"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	geminiBaseURL  = "https://generativelanguage.googleapis.com/v1"
)

// Strategy is one way of turning a trip into an itinerary. All strategies
// share the same contract; the orchestrator selects one and falls back to
// the synthetic strategy when a provider-backed one fails.
type Strategy interface {
	Name() string
	Generate(ctx context.Context, trip *models.Trip) (*models.Itinerary, error)
}

// Wire types for the JSON the generative backends are instructed to
// return. Field names follow the prompt's camelCase schema, not this
// service's snake_case API shape.

type providerItinerary struct {
	Days []providerDay `json:"days"`
}

type providerDay struct {
	DayNumber  int                `json:"dayNumber"`
	Date       string             `json:"date"`
	Summary    string             `json:"summary"`
	Activities []providerActivity `json:"activities"`
	Notes      string             `json:"notes"`
}

type providerActivity struct {
	TimeSlot      string            `json:"timeSlot"`
	PlaceName     string            `json:"placeName"`
	PlaceType     string            `json:"placeType"`
	Description   string            `json:"description"`
	EstimatedCost float64           `json:"estimatedCost"`
	Location      *providerLocation `json:"location"`
}

type providerLocation struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	MapURL  string  `json:"mapUrl"`
}

// buildPrompt embeds the trip's parameters and the required response
// schema into a natural-language instruction for the backend
func buildPrompt(trip *models.Trip, dayCount int) string {
	interests := strings.Join(trip.Interests, ", ")
	if interests == "" {
		interests = "general sightseeing"
	}

	return fmt.Sprintf(`Generate a detailed %d-day travel itinerary for %s.

Trip Details:
- Destination: %s
- Travel Type: %s
- Budget: %.0f %s
- Interests: %s
- Start Date: %s
- End Date: %s

Please provide a JSON response with the following structure:
{
  "days": [
    {
      "dayNumber": 1,
      "date": "YYYY-MM-DD",
      "summary": "Brief summary of the day",
      "activities": [
        {
          "timeSlot": "Morning" | "Afternoon" | "Evening",
          "placeName": "Name of the place",
          "placeType": "Museum" | "Restaurant" | "Park" | "Landmark" | etc,
          "description": "Detailed description",
          "estimatedCost": number,
          "location": {
            "address": "Full address",
            "lat": number,
            "lng": number,
            "mapUrl": "Google Maps URL"
          }
        }
      ],
      "notes": "Additional notes for the day"
    }
  ]
}

Make it realistic, engaging, and within the budget. Include 3 activities per day (Morning, Afternoon, Evening). Return ONLY valid JSON (no markdown).`,
		dayCount, trip.Destination, trip.Destination, trip.TravelType,
		trip.Budget, trip.Currency, interests,
		trip.StartDate.Format("2006-01-02"), trip.EndDate.Format("2006-01-02"))
}

// stripCodeFences removes markdown code-fence wrapping some backends add
// despite being told not to
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// extractJSONObject returns the substring from the first '{' to the last
// '}'. Backends occasionally wrap the JSON in prose.
func extractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// parseProviderItinerary parses the backend's textual response into the
// itinerary schema. It strips code fences, locates the JSON object,
// unmarshals it, and requires a non-empty days list.
func parseProviderItinerary(provider, content string, tripStart time.Time) (*models.Itinerary, error) {
	cleaned := stripCodeFences(content)
	raw, ok := extractJSONObject(cleaned)
	if !ok {
		return nil, &ProviderError{Provider: provider, Err: fmt.Errorf("no JSON object found in response")}
	}

	var parsed providerItinerary
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &ProviderError{Provider: provider, Err: fmt.Errorf("parsing response JSON: %w", err)}
	}
	if len(parsed.Days) == 0 {
		return nil, &ProviderError{Provider: provider, Err: fmt.Errorf("%w: missing days list", ErrMalformedResponse)}
	}

	days := make([]models.Day, 0, len(parsed.Days))
	for i, pd := range parsed.Days {
		date, err := time.Parse("2006-01-02", pd.Date)
		if err != nil {
			// Backends sometimes return sloppy dates; derive from the trip span instead
			date = truncateToDay(tripStart).AddDate(0, 0, i)
		}

		activities := make([]models.Activity, 0, len(pd.Activities))
		for _, pa := range pd.Activities {
			a := models.Activity{
				TimeSlot:      pa.TimeSlot,
				PlaceName:     pa.PlaceName,
				PlaceType:     pa.PlaceType,
				Description:   pa.Description,
				EstimatedCost: pa.EstimatedCost,
			}
			if pa.Location != nil {
				a.Location = &models.Location{
					Address: pa.Location.Address,
					Lat:     pa.Location.Lat,
					Lng:     pa.Location.Lng,
					MapURL:  pa.Location.MapURL,
				}
			}
			activities = append(activities, a)
		}

		days = append(days, models.Day{
			DayNumber:  pd.DayNumber,
			Date:       date,
			Summary:    pd.Summary,
			Activities: activities,
			Notes:      pd.Notes,
		})
	}

	itin := &models.Itinerary{Days: days}
	itin.RecomputeCosts()
	return itin, nil
}

// postJSON sends the request body and returns the response body, mapping
// transport failures, timeouts, and non-2xx statuses to ProviderError.
// Retry and fallback are the orchestrator's responsibility, not this
// layer's.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &ProviderError{Provider: provider, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderError{Provider: provider, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: provider, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{Provider: provider, Err: fmt.Errorf("api error: %s: %s", resp.Status, truncateBody(data))}
	}
	return data, nil
}

func truncateBody(data []byte) string {
	const max = 300
	s := string(data)
	if len(s) > max {
		return s[:max]
	}
	return s
}

// ChatStrategy generates itineraries through an OpenAI-style chat
// completion API
type ChatStrategy struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewChatStrategy creates the chat-style adapter with a bounded call
// timeout
func NewChatStrategy(cfg config.AIConfig) *ChatStrategy {
	model := cfg.Model
	if model == "" {
		model = config.DefaultOpenAIModel
	}
	return &ChatStrategy{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: openAIEndpoint,
		client:   &http.Client{Timeout: cfg.CallTimeout},
	}
}

func (s *ChatStrategy) Name() string {
	return config.AIProviderOpenAI
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *ChatStrategy) Generate(ctx context.Context, trip *models.Trip) (*models.Itinerary, error) {
	dates, err := ExpandDateRange(trip.StartDate, trip.EndDate)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a professional travel planner. Always respond with valid JSON only."},
			{"role": "user", "content": buildPrompt(trip, len(dates))},
		},
		"temperature": 0.7,
		"max_tokens":  3000,
	}

	data, err := postJSON(ctx, s.client, s.Name(), s.endpoint,
		map[string]string{"Authorization": "Bearer " + s.apiKey}, payload)
	if err != nil {
		return nil, err
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &ProviderError{Provider: s.Name(), Err: fmt.Errorf("decoding response: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: s.Name(), Err: fmt.Errorf("%w: no choices returned", ErrMalformedResponse)}
	}

	return parseProviderItinerary(s.Name(), resp.Choices[0].Message.Content, trip.StartDate)
}

// CompletionStrategy generates itineraries through the Gemini
// generateContent API
type CompletionStrategy struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewCompletionStrategy creates the completion-style adapter with a
// bounded call timeout
func NewCompletionStrategy(cfg config.AIConfig) *CompletionStrategy {
	model := cfg.Model
	if model == "" {
		model = config.DefaultGeminiModel
	}
	return &CompletionStrategy{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: geminiBaseURL,
		client:  &http.Client{Timeout: cfg.CallTimeout},
	}
}

func (s *CompletionStrategy) Name() string {
	return config.AIProviderGemini
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (s *CompletionStrategy) Generate(ctx context.Context, trip *models.Trip) (*models.Itinerary, error) {
	dates, err := ExpandDateRange(trip.StartDate, trip.EndDate)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": buildPrompt(trip, len(dates))}}},
		},
		"generationConfig": map[string]any{
			"temperature":     0.7,
			"maxOutputTokens": 8192,
		},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	data, err := postJSON(ctx, s.client, s.Name(), url, nil, payload)
	if err != nil {
		return nil, err
	}

	var resp generateContentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &ProviderError{Provider: s.Name(), Err: fmt.Errorf("decoding response: %w", err)}
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &ProviderError{Provider: s.Name(), Err: fmt.Errorf("%w: no candidates returned", ErrMalformedResponse)}
	}

	return parseProviderItinerary(s.Name(), resp.Candidates[0].Content.Parts[0].Text, trip.StartDate)
}
