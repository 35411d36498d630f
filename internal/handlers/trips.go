package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"VOYAGEAI_BACK-END/internal/config"
	"VOYAGEAI_BACK-END/internal/dto"
	"VOYAGEAI_BACK-END/internal/models"
	"VOYAGEAI_BACK-END/internal/store"
	"VOYAGEAI_BACK-END/internal/utils"
)

// TripsHandler manages trip-related endpoints
type TripsHandler struct {
	db          *pgxpool.Pool
	itineraries *store.ItineraryStore
	config      *config.Config
}

// NewTripsHandler creates a new TripsHandler
func NewTripsHandler(db *pgxpool.Pool, itineraries *store.ItineraryStore, cfg *config.Config) *TripsHandler {
	return &TripsHandler{db: db, itineraries: itineraries, config: cfg}
}

// Trips dispatches by HTTP method for /api/trips
func (h *TripsHandler) Trips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateTrip(w, r)
	case http.MethodGet:
		// If path has an ID suffix, treat as detail
		if strings.HasPrefix(r.URL.Path, "/api/trips/") && len(r.URL.Path) > len("/api/trips/") {
			h.TripDetail(w, r)
			return
		}
		h.ListTrips(w, r)
	case http.MethodDelete:
		h.DeleteTrip(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CreateTrip handles POST /api/trips
// @Summary Create a new trip
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTripRequest true "Trip payload"
// @Success 201 {object} dto.CreateTripResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips [post]
func (h *TripsHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	// Basic validation
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" || req.StartDate == "" || req.EndDate == "" || req.Budget == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "destination, start_date, end_date, and budget are required")
		return
	}
	if *req.Budget < 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "budget must be a positive number")
		return
	}

	// Parse dates (ISO 8601 format: YYYY-MM-DD or RFC3339)
	startAt, err := utils.ParseDate(req.StartDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "start_date must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
		return
	}
	endAt, err := utils.ParseDate(req.EndDate)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date must be ISO 8601 format (YYYY-MM-DD or RFC3339)")
		return
	}
	if endAt.Before(startAt) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "end_date cannot be before start_date")
		return
	}

	// Defaults
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "INR"
	}
	travelType := strings.ToLower(strings.TrimSpace(req.TravelType))
	if travelType == "" {
		travelType = "solo"
	}
	if !models.IsValidTravelType(travelType) {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "travel_type must be one of solo, family, friends, couple, business, other")
		return
	}
	interests := req.Interests
	if interests == nil {
		interests = []string{}
	}

	now := time.Now()
	newID := uuid.New()

	_, err = h.db.Exec(context.Background(),
		`INSERT INTO trips (id, user_id, destination, start_date, end_date, budget, currency, interests, travel_type, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		newID, userID, req.Destination, startAt, endAt, *req.Budget, currency, interests, travelType, now, now,
	)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	trip := models.Trip{
		ID:          newID,
		UserID:      userID,
		Destination: req.Destination,
		StartDate:   startAt,
		EndDate:     endAt,
		Budget:      *req.Budget,
		Currency:    currency,
		Interests:   interests,
		TravelType:  travelType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.CreateTripResponse{
		Success: true,
		Trip:    tripToResponse(trip),
	})
}

// ListTrips handles GET /api/trips
// @Summary List the authenticated user's trips
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TripListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips [get]
func (h *TripsHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	rows, err := h.db.Query(context.Background(),
		`SELECT id, user_id, destination, start_date, end_date, budget, currency, interests, travel_type, created_at, updated_at
           FROM trips
          WHERE user_id = $1
          ORDER BY created_at DESC`, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	items := make([]dto.TripResponse, 0)
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.UserID, &t.Destination, &t.StartDate, &t.EndDate, &t.Budget, &t.Currency, &t.Interests, &t.TravelType, &t.CreatedAt, &t.UpdatedAt); err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		items = append(items, tripToResponse(t))
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TripListResponse{
		Success: true,
		Count:   len(items),
		Trips:   items,
	})
}

// TripDetail handles GET /api/trips/{trip_id}
// @Summary Get a trip with its itinerary
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} dto.TripDetailResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{trip_id} [get]
func (h *TripsHandler) TripDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	tripID, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/trips/"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid trip id", "trip_id must be UUID")
		return
	}

	trip, err := h.loadTrip(r.Context(), tripID, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
		return
	}

	var itin *models.Itinerary
	found, err := h.itineraries.GetByTrip(r.Context(), trip.ID)
	if err != nil && !errors.Is(err, store.ErrItineraryNotFound) {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	if err == nil {
		itin = found
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TripDetailResponse{
		Success:   true,
		Trip:      tripToResponse(*trip),
		Itinerary: itin,
	})
}

// DeleteTrip handles DELETE /api/trips/{trip_id}. Deleting a trip
// cascades deletion of its itinerary.
// @Summary Delete a trip and its itinerary
// @Tags trips
// @Produce json
// @Security BearerAuth
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trips/{trip_id} [delete]
func (h *TripsHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	tripID, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/trips/"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid trip id", "trip_id must be UUID")
		return
	}

	if _, err := h.loadTrip(r.Context(), tripID, userID); err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Trip not found")
		return
	}

	if err := h.itineraries.DeleteByTrip(r.Context(), tripID); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	if _, err := h.db.Exec(context.Background(), `DELETE FROM trips WHERE id = $1 AND user_id = $2`, tripID, userID); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Trip and related itinerary deleted successfully"})
}

// loadTrip fetches a trip scoped to its owner
func (h *TripsHandler) loadTrip(ctx context.Context, tripID, userID uuid.UUID) (*models.Trip, error) {
	var t models.Trip
	err := h.db.QueryRow(ctx,
		`SELECT id, user_id, destination, start_date, end_date, budget, currency, interests, travel_type, created_at, updated_at
           FROM trips WHERE id = $1 AND user_id = $2`, tripID, userID).Scan(
		&t.ID, &t.UserID, &t.Destination, &t.StartDate, &t.EndDate, &t.Budget, &t.Currency, &t.Interests, &t.TravelType, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func tripToResponse(t models.Trip) dto.TripResponse {
	return dto.TripResponse{
		ID:          t.ID.String(),
		Destination: t.Destination,
		StartDate:   utils.FormatDate(t.StartDate),
		EndDate:     utils.FormatDate(t.EndDate),
		Budget:      t.Budget,
		Currency:    t.Currency,
		Interests:   t.Interests,
		TravelType:  t.TravelType,
		CreatedAt:   utils.FormatTimestamp(t.CreatedAt),
		UpdatedAt:   utils.FormatTimestamp(t.UpdatedAt),
	}
}
