package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"VOYAGEAI_BACK-END/internal/dto"
	"VOYAGEAI_BACK-END/internal/itinerary"
	"VOYAGEAI_BACK-END/internal/models"
	"VOYAGEAI_BACK-END/internal/store"
	"VOYAGEAI_BACK-END/internal/utils"
)

// tripLoader resolves a trip scoped to its owner. TripsHandler provides
// the pgx-backed implementation.
type tripLoader interface {
	loadTrip(ctx context.Context, tripID, userID uuid.UUID) (*models.Trip, error)
}

// itineraryStore is the persistence surface the itinerary endpoints use.
// store.ItineraryStore is the pgx-backed implementation.
type itineraryStore interface {
	Create(ctx context.Context, itin *models.Itinerary) error
	GetByTrip(ctx context.Context, tripID uuid.UUID) (*models.Itinerary, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Itinerary, error)
	UpdateDays(ctx context.Context, id, userID uuid.UUID, days []models.Day) (*models.Itinerary, error)
	DeleteByTrip(ctx context.Context, tripID uuid.UUID) error
	DeleteByID(ctx context.Context, id, userID uuid.UUID) error
}

// ItinerariesHandler manages itinerary endpoints, including AI generation
type ItinerariesHandler struct {
	trips        tripLoader
	itineraries  itineraryStore
	orchestrator *itinerary.Orchestrator
}

// NewItinerariesHandler creates a new ItinerariesHandler
func NewItinerariesHandler(trips tripLoader, itineraries itineraryStore, orchestrator *itinerary.Orchestrator) *ItinerariesHandler {
	return &ItinerariesHandler{
		trips:        trips,
		itineraries:  itineraries,
		orchestrator: orchestrator,
	}
}

// Itineraries dispatches by HTTP method for /api/itineraries and
// /api/itineraries/{id}
func (h *ItinerariesHandler) Itineraries(w http.ResponseWriter, r *http.Request) {
	hasID := strings.HasPrefix(r.URL.Path, "/api/itineraries/") && len(r.URL.Path) > len("/api/itineraries/")
	switch {
	case r.Method == http.MethodPost && !hasID:
		h.CreateItinerary(w, r)
	case r.Method == http.MethodGet && hasID:
		h.GetItinerary(w, r)
	case (r.Method == http.MethodPut || r.Method == http.MethodPatch) && hasID:
		h.UpdateItinerary(w, r)
	case r.Method == http.MethodDelete && hasID:
		h.DeleteItinerary(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// GenerateItinerary handles POST /api/trips/{trip_id}/itinerary.
// Generation is rejected with a conflict when the trip already has an
// itinerary; the caller must delete it first or use the regenerate
// endpoint.
// @Summary Generate an itinerary for a trip
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param trip_id path string true "Trip ID"
// @Success 201 {object} dto.GenerateItineraryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{trip_id}/itinerary [post]
func (h *ItinerariesHandler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	tripID, err := tripIDFromItineraryPath(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid trip id", "trip_id must be UUID")
		return
	}

	trip, err := h.trips.loadTrip(r.Context(), tripID, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
		return
	}

	// Duplicate-generation guard lives here at the boundary, before the
	// orchestrator is invoked
	if _, err := h.itineraries.GetByTrip(r.Context(), trip.ID); err == nil {
		utils.WriteErrorResponse(w, http.StatusConflict, "Conflict",
			"Itinerary already exists for this trip. Delete it first or use the regenerate endpoint.")
		return
	} else if !errors.Is(err, store.ErrItineraryNotFound) {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	h.generateAndStore(w, r, trip, userID, http.StatusCreated, "Itinerary generated successfully")
}

// RegenerateItinerary handles POST /api/trips/{trip_id}/itinerary/regenerate.
// Any existing itinerary is deleted first; the replacement gets a fresh id.
// @Summary Regenerate a trip's itinerary
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} dto.GenerateItineraryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{trip_id}/itinerary/regenerate [post]
func (h *ItinerariesHandler) RegenerateItinerary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	tripID, err := tripIDFromItineraryPath(r.URL.Path)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid trip id", "trip_id must be UUID")
		return
	}

	trip, err := h.trips.loadTrip(r.Context(), tripID, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
		return
	}

	if err := h.itineraries.DeleteByTrip(r.Context(), trip.ID); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	h.generateAndStore(w, r, trip, userID, http.StatusOK, "Itinerary regenerated successfully")
}

// generateAndStore runs the orchestrator and persists the result exactly
// once. A losing racer on the trip's unique constraint gets a conflict,
// not a silent overwrite.
func (h *ItinerariesHandler) generateAndStore(w http.ResponseWriter, r *http.Request, trip *models.Trip, userID uuid.UUID, status int, message string) {
	itin, provider, err := h.orchestrator.Generate(r.Context(), trip)
	if err != nil {
		switch {
		case errors.Is(err, itinerary.ErrInvalidRange):
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		case errors.Is(err, itinerary.ErrEmptyItinerary):
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Generation failed", "Generated itinerary is empty. Please try again.")
		default:
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Generation failed", "Failed to generate itinerary. Please try again or contact support.")
		}
		return
	}

	itin.TripID = trip.ID
	itin.UserID = userID
	if err := h.itineraries.Create(r.Context(), itin); err != nil {
		if errors.Is(err, store.ErrDuplicateItinerary) {
			utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", "Itinerary already exists for this trip")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, status, dto.GenerateItineraryResponse{
		Success:    true,
		Message:    message,
		Itinerary:  itin,
		AIProvider: provider,
	})
}

// CreateItinerary handles POST /api/itineraries with a prepared day
// sequence
// @Summary Create an itinerary manually
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateItineraryRequest true "Itinerary payload"
// @Success 201 {object} dto.ItineraryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itineraries [post]
func (h *ItinerariesHandler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateItineraryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.TripID == "" || len(req.Days) == 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "trip_id and a non-empty days array are required")
		return
	}
	if err := validateDays(req.Days); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid trip id", "trip_id must be UUID")
		return
	}

	trip, err := h.trips.loadTrip(r.Context(), tripID, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
		return
	}

	itin := &models.Itinerary{
		TripID: trip.ID,
		UserID: userID,
		Days:   req.Days,
	}
	if err := h.itineraries.Create(r.Context(), itin); err != nil {
		if errors.Is(err, store.ErrDuplicateItinerary) {
			utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", "Itinerary already exists for this trip")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.ItineraryResponse{Success: true, Itinerary: itin})
}

// GetItinerary handles GET /api/itineraries/{id}
// @Summary Get an itinerary
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Success 200 {object} dto.ItineraryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/itineraries/{id} [get]
func (h *ItinerariesHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/itineraries/"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid itinerary id", "id must be UUID")
		return
	}

	itin, err := h.itineraries.GetByID(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, store.ErrItineraryNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Itinerary not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ItineraryResponse{Success: true, Itinerary: itin})
}

// UpdateItinerary handles PUT /api/itineraries/{id}. Cost aggregates are
// recomputed from the submitted activities; totals in the payload are
// ignored.
// @Summary Update an itinerary's days
// @Tags itineraries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Param payload body dto.UpdateItineraryRequest true "Replacement days"
// @Success 200 {object} dto.ItineraryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/itineraries/{id} [put]
func (h *ItinerariesHandler) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/itineraries/"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid itinerary id", "id must be UUID")
		return
	}

	var req dto.UpdateItineraryRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if len(req.Days) == 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "a non-empty days array is required")
		return
	}
	if err := validateDays(req.Days); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", err.Error())
		return
	}

	itin, err := h.itineraries.UpdateDays(r.Context(), id, userID, req.Days)
	if err != nil {
		if errors.Is(err, store.ErrItineraryNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Itinerary not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ItineraryResponse{Success: true, Itinerary: itin})
}

// DeleteItinerary handles DELETE /api/itineraries/{id}
// @Summary Delete an itinerary
// @Tags itineraries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Itinerary ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/itineraries/{id} [delete]
func (h *ItinerariesHandler) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/itineraries/"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid itinerary id", "id must be UUID")
		return
	}

	if err := h.itineraries.DeleteByID(r.Context(), id, userID); err != nil {
		if errors.Is(err, store.ErrItineraryNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Itinerary not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Itinerary deleted successfully"})
}

// tripIDFromItineraryPath extracts the trip id from
// /api/trips/{trip_id}/itinerary[/regenerate]
func tripIDFromItineraryPath(path string) (uuid.UUID, error) {
	s := strings.TrimPrefix(path, "/api/trips/")
	s = strings.TrimSuffix(s, "/regenerate")
	s = strings.TrimSuffix(s, "/itinerary")
	return uuid.Parse(s)
}

// validateDays checks client-supplied day payloads: each activity needs a
// known time slot, a place name, and a non-negative cost
func validateDays(days []models.Day) error {
	for _, d := range days {
		for _, a := range d.Activities {
			if !models.IsValidTimeSlot(a.TimeSlot) {
				return errors.New("time_slot must be one of Morning, Afternoon, Evening, Night")
			}
			if strings.TrimSpace(a.PlaceName) == "" {
				return errors.New("place_name is required for every activity")
			}
			if a.EstimatedCost < 0 {
				return errors.New("estimated_cost cannot be negative")
			}
		}
	}
	return nil
}
