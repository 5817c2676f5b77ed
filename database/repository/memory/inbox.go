package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"powerup/database"
	"powerup/models"
)

type notificationStore struct{ s *Store }

func (r *notificationStore) Create(ctx context.Context, n *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	journal(ctx, r.s.notifications, n.ID)
	r.s.notifications[n.ID] = *n
	return nil
}

func (r *notificationStore) GetByID(_ context.Context, id string) (*models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, fmt.Errorf("fetch notification %s: %w", id, database.ErrNoDocument)
	}
	return &n, nil
}

func (r *notificationStore) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Notification{}
	for _, n := range r.s.notifications {
		if n.UserID == userID && (!unreadOnly || !n.Read) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *notificationStore) CountUnread(_ context.Context, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var count int64
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *notificationStore) MarkRead(ctx context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok || n.UserID != userID {
		return fmt.Errorf("notification %s: %w", id, database.ErrNoDocument)
	}
	journal(ctx, r.s.notifications, id)
	n.Read = true
	r.s.notifications[id] = n
	return nil
}

func (r *notificationStore) Delete(ctx context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok || n.UserID != userID {
		return fmt.Errorf("notification %s: %w", id, database.ErrNoDocument)
	}
	journal(ctx, r.s.notifications, id)
	delete(r.s.notifications, id)
	return nil
}

type ratingStore struct{ s *Store }

func (r *ratingStore) Create(ctx context.Context, rating *models.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.ratings {
		if other.AppointmentID == rating.AppointmentID && other.UserID == rating.UserID {
			return fmt.Errorf("insert rating: %w", database.ErrDuplicateKey)
		}
	}
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	rating.CreatedAt = time.Now()
	journal(ctx, r.s.ratings, rating.ID)
	r.s.ratings[rating.ID] = *rating
	return nil
}

func (r *ratingStore) Exists(_ context.Context, appointmentID, userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, other := range r.s.ratings {
		if other.AppointmentID == appointmentID && other.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ratingStore) ListByTrainer(_ context.Context, trainerID string) ([]models.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Rating{}
	for _, rt := range r.s.ratings {
		if rt.TrainerID == trainerID {
			out = append(out, rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ratingStore) SummaryForTrainer(ctx context.Context, trainerID string) (*models.RatingSummary, error) {
	ratings, _ := r.ListByTrainer(ctx, trainerID)
	summary := &models.RatingSummary{TrainerID: trainerID, Count: len(ratings)}
	if len(ratings) == 0 {
		return summary, nil
	}
	var trainerSum, gymSum int
	for _, rt := range ratings {
		trainerSum += rt.TrainerRating
		gymSum += rt.GymRating
	}
	summary.AvgTrainerRating = float64(trainerSum) / float64(len(ratings))
	summary.AvgGymRating = float64(gymSum) / float64(len(ratings))
	return summary, nil
}
