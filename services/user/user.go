package user

import (
	"context"
	"fmt"
	"time"

	"powerup/models"
	"powerup/utils"
)

func (s *DefaultUserService) Sync(ctx context.Context, id utils.Identity) error {
	if id.UserID == "" {
		return fmt.Errorf("%w: identity has no subject", utils.ErrValidation)
	}

	s.mu.Lock()
	last, seen := s.synced[id.UserID]
	s.mu.Unlock()
	if seen && time.Since(last) < s.refresh {
		return nil
	}

	u := &models.User{
		ID:       id.UserID,
		Username: id.Name,
		Email:    id.Email,
		Role:     id.Role,
	}
	if err := s.Repo.Upsert(ctx, u); err != nil {
		return fmt.Errorf("failed to sync user %s: %w", id.UserID, err)
	}

	s.mu.Lock()
	s.synced[id.UserID] = time.Now()
	s.mu.Unlock()
	return nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	return u, utils.FromStore(err, "user")
}
