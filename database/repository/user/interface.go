package userRepo

import (
	"context"

	"sportify/models"
)

// UserRepository is the read-only slice of the account store the reservation
// core needs: resolving a requester id to a profile for notification email
// fallback.
type UserRepository interface {
	// GetByID retrieves a user by id. Returns (nil, nil) when no such user
	// exists.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
