package userRepo

import (
	"context"

	"powerup/models"
)

// UserRepository defines methods for the local user projection.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDs retrieves the users found among ids.
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// Upsert creates or refreshes a user record from identity claims.
	Upsert(ctx context.Context, user *models.User) error
	// SetFCMToken stores the device push token of a user.
	SetFCMToken(ctx context.Context, id, token string) error
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error
}
