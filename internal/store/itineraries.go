package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"VOYAGEAI_BACK-END/internal/models"
)

// uniqueViolation is the Postgres error code for a unique constraint hit
const uniqueViolation = "23505"

// ItineraryStore persists itineraries. Days are stored as a JSONB
// document; cost aggregates are recomputed from the activities on every
// save so a stored total can never drift from its days.
type ItineraryStore struct {
	db *pgxpool.Pool
}

// NewItineraryStore creates an ItineraryStore backed by the given pool
func NewItineraryStore(db *pgxpool.Pool) *ItineraryStore {
	return &ItineraryStore{db: db}
}

// Create inserts a new itinerary, assigning it a fresh id. The unique
// constraint on trip_id enforces at most one live itinerary per trip;
// violations surface as ErrDuplicateItinerary.
func (s *ItineraryStore) Create(ctx context.Context, itin *models.Itinerary) error {
	itin.RecomputeCosts()

	itin.ID = uuid.New()
	now := time.Now()
	itin.LastUpdated = now
	itin.CreatedAt = now
	itin.UpdatedAt = now

	daysJSON, err := json.Marshal(itin.Days)
	if err != nil {
		return fmt.Errorf("encoding itinerary days: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO itineraries (id, trip_id, user_id, days, total_estimated_cost, last_updated, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		itin.ID, itin.TripID, itin.UserID, daysJSON, itin.TotalEstimatedCost, itin.LastUpdated, itin.CreatedAt, itin.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateItinerary
		}
		return err
	}
	return nil
}

// GetByTrip returns the trip's itinerary, or ErrItineraryNotFound
func (s *ItineraryStore) GetByTrip(ctx context.Context, tripID uuid.UUID) (*models.Itinerary, error) {
	return s.get(ctx,
		`SELECT id, trip_id, user_id, days, total_estimated_cost, last_updated, created_at, updated_at
           FROM itineraries WHERE trip_id = $1`, tripID)
}

// GetByID returns the itinerary scoped to its owner, or ErrItineraryNotFound
func (s *ItineraryStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Itinerary, error) {
	return s.get(ctx,
		`SELECT id, trip_id, user_id, days, total_estimated_cost, last_updated, created_at, updated_at
           FROM itineraries WHERE id = $1 AND user_id = $2`, id, userID)
}

// UpdateDays replaces the itinerary's day sequence and recomputes its
// cost aggregates. Totals supplied by the caller are ignored.
func (s *ItineraryStore) UpdateDays(ctx context.Context, id, userID uuid.UUID, days []models.Day) (*models.Itinerary, error) {
	itin, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	itin.Days = days
	itin.RecomputeCosts()
	now := time.Now()
	itin.LastUpdated = now
	itin.UpdatedAt = now

	daysJSON, err := json.Marshal(itin.Days)
	if err != nil {
		return nil, fmt.Errorf("encoding itinerary days: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`UPDATE itineraries
            SET days = $1, total_estimated_cost = $2, last_updated = $3, updated_at = $4
          WHERE id = $5`,
		daysJSON, itin.TotalEstimatedCost, itin.LastUpdated, itin.UpdatedAt, itin.ID,
	)
	if err != nil {
		return nil, err
	}
	return itin, nil
}

// DeleteByTrip removes the trip's itinerary if one exists. Deleting a
// trip cascades here; regeneration calls this before creating a fresh
// record with a new id.
func (s *ItineraryStore) DeleteByTrip(ctx context.Context, tripID uuid.UUID) error {
	_, err := s.db.Exec(ctx, `DELETE FROM itineraries WHERE trip_id = $1`, tripID)
	return err
}

// DeleteByID removes the itinerary scoped to its owner
func (s *ItineraryStore) DeleteByID(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM itineraries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrItineraryNotFound
	}
	return nil
}

func (s *ItineraryStore) get(ctx context.Context, query string, args ...any) (*models.Itinerary, error) {
	var itin models.Itinerary
	var daysJSON []byte
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&itin.ID, &itin.TripID, &itin.UserID, &daysJSON, &itin.TotalEstimatedCost,
		&itin.LastUpdated, &itin.CreatedAt, &itin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItineraryNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(daysJSON, &itin.Days); err != nil {
		return nil, fmt.Errorf("decoding itinerary days: %w", err)
	}
	return &itin, nil
}
