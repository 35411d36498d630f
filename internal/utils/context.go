package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// UserIDKey is the request-context key under which the auth middleware
// stores the authenticated user's id
const UserIDKey contextKey = "user_id"

// EmailKey is the request-context key for the authenticated user's email
const EmailKey contextKey = "email"

// GetUserIDFromContext extracts the authenticated user id set by the auth
// middleware
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}
