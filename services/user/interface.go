package user

import (
	"context"
	"sync"
	"time"

	userRepo "powerup/database/repository/user"
	"powerup/models"
	"powerup/utils"
)

// UserService keeps the local projection of identity accounts that
// notifications and bookings read display names and push tokens from.
type UserService interface {
	// Sync records the caller's identity claims. Repeated calls within the
	// refresh window are no-ops.
	Sync(ctx context.Context, id utils.Identity) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository

	refresh time.Duration
	mu      sync.Mutex
	synced  map[string]time.Time
}

func NewDefaultUserService(repo userRepo.UserRepository) *DefaultUserService {
	return &DefaultUserService{
		Repo:    repo,
		refresh: 10 * time.Minute,
		synced:  map[string]time.Time{},
	}
}
