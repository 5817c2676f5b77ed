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

type trainerStore struct{ s *Store }

func cloneTrainer(t models.Trainer) models.Trainer {
	t.ServiceIDs = append([]string{}, t.ServiceIDs...)
	return t
}

func (r *trainerStore) linkedElsewhere(t *models.Trainer) bool {
	if t.UserID == "" {
		return false
	}
	for _, other := range r.s.trainers {
		if other.ID != t.ID && other.UserID == t.UserID {
			return true
		}
	}
	return false
}

func (r *trainerStore) Create(ctx context.Context, t *models.Trainer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if _, ok := r.s.trainers[t.ID]; ok || r.linkedElsewhere(t) {
		return fmt.Errorf("insert trainer: %w", database.ErrDuplicateKey)
	}
	if t.ServiceIDs == nil {
		t.ServiceIDs = []string{}
	}
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	journal(ctx, r.s.trainers, t.ID)
	r.s.trainers[t.ID] = cloneTrainer(*t)
	return nil
}

func (r *trainerStore) GetByID(_ context.Context, id string) (*models.Trainer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.trainers[id]
	if !ok {
		return nil, fmt.Errorf("fetch trainer %s: %w", id, database.ErrNoDocument)
	}
	t = cloneTrainer(t)
	return &t, nil
}

func (r *trainerStore) GetByUserID(_ context.Context, userID string) (*models.Trainer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if userID != "" {
		for _, t := range r.s.trainers {
			if t.UserID == userID {
				t = cloneTrainer(t)
				return &t, nil
			}
		}
	}
	return nil, fmt.Errorf("fetch trainer: %w", database.ErrNoDocument)
}

func (r *trainerStore) List(_ context.Context, gymID string) ([]models.Trainer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Trainer{}
	for _, t := range r.s.trainers {
		if gymID == "" || t.GymID == gymID {
			out = append(out, cloneTrainer(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Update rewrites the profile fields; offered services are left alone.
func (r *trainerStore) Update(ctx context.Context, t *models.Trainer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.trainers[t.ID]
	if !ok {
		return database.ErrNoDocument
	}
	if r.linkedElsewhere(t) {
		return fmt.Errorf("update trainer: %w", database.ErrDuplicateKey)
	}
	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = time.Now()
	t.ServiceIDs = append([]string{}, cur.ServiceIDs...)
	journal(ctx, r.s.trainers, t.ID)
	r.s.trainers[t.ID] = cloneTrainer(*t)
	return nil
}

func (r *trainerStore) AddService(ctx context.Context, trainerID, serviceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.trainers[trainerID]
	if !ok {
		return fmt.Errorf("trainer %s: %w", trainerID, database.ErrNoDocument)
	}
	for _, id := range t.ServiceIDs {
		if id == serviceID {
			return nil
		}
	}
	journal(ctx, r.s.trainers, trainerID)
	t = cloneTrainer(t)
	t.ServiceIDs = append(t.ServiceIDs, serviceID)
	t.UpdatedAt = time.Now()
	r.s.trainers[trainerID] = t
	return nil
}

func (r *trainerStore) RemoveService(ctx context.Context, trainerID, serviceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.trainers[trainerID]
	if !ok {
		return fmt.Errorf("trainer %s: %w", trainerID, database.ErrNoDocument)
	}
	journal(ctx, r.s.trainers, trainerID)
	r.s.trainers[trainerID] = withoutService(t, serviceID)
	return nil
}

func (r *trainerStore) RemoveServiceFromAll(ctx context.Context, serviceID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, t := range r.s.trainers {
		next := withoutService(t, serviceID)
		if len(next.ServiceIDs) == len(t.ServiceIDs) {
			continue
		}
		journal(ctx, r.s.trainers, id)
		r.s.trainers[id] = next
		n++
	}
	return n, nil
}

func withoutService(t models.Trainer, serviceID string) models.Trainer {
	kept := make([]string, 0, len(t.ServiceIDs))
	for _, id := range t.ServiceIDs {
		if id != serviceID {
			kept = append(kept, id)
		}
	}
	if len(kept) != len(t.ServiceIDs) {
		t.UpdatedAt = time.Now()
	}
	t.ServiceIDs = kept
	return t
}

func (r *trainerStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.trainers[id]; !ok {
		return database.ErrNoDocument
	}
	journal(ctx, r.s.trainers, id)
	delete(r.s.trainers, id)
	return nil
}

type userStore struct{ s *Store }

func (r *userStore) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("fetch user %s: %w", id, database.ErrNoDocument)
	}
	return &u, nil
}

func (r *userStore) GetByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *userStore) Upsert(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	cur, ok := r.s.users[u.ID]
	journal(ctx, r.s.users, u.ID)
	if ok {
		cur.Username, cur.Email, cur.Role = u.Username, u.Email, u.Role
		cur.UpdatedAt = now
		r.s.users[u.ID] = cur
		*u = cur
		return nil
	}
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = *u
	return nil
}

func (r *userStore) SetFCMToken(ctx context.Context, id, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, database.ErrNoDocument)
	}
	journal(ctx, r.s.users, id)
	u.FCMToken = token
	u.UpdatedAt = time.Now()
	r.s.users[id] = u
	return nil
}

func (r *userStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, database.ErrNoDocument)
	}
	journal(ctx, r.s.users, id)
	delete(r.s.users, id)
	return nil
}
