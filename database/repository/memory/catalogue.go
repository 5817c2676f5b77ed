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

type gymStore struct{ s *Store }

func (r *gymStore) Create(ctx context.Context, gym *models.Gym) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if gym.ID == "" {
		gym.ID = uuid.New().String()
	}
	if _, ok := r.s.gyms[gym.ID]; ok {
		return fmt.Errorf("insert gym: %w", database.ErrDuplicateKey)
	}
	now := time.Now()
	gym.CreatedAt, gym.UpdatedAt = now, now
	journal(ctx, r.s.gyms, gym.ID)
	r.s.gyms[gym.ID] = *gym
	return nil
}

func (r *gymStore) GetByID(_ context.Context, id string) (*models.Gym, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	gym, ok := r.s.gyms[id]
	if !ok {
		return nil, fmt.Errorf("fetch gym %s: %w", id, database.ErrNoDocument)
	}
	return &gym, nil
}

func (r *gymStore) List(_ context.Context) ([]models.Gym, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Gym, 0, len(r.s.gyms))
	for _, g := range r.s.gyms {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *gymStore) Update(ctx context.Context, gym *models.Gym) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.gyms[gym.ID]
	if !ok {
		return database.ErrNoDocument
	}
	gym.CreatedAt = cur.CreatedAt
	gym.UpdatedAt = time.Now()
	journal(ctx, r.s.gyms, gym.ID)
	r.s.gyms[gym.ID] = *gym
	return nil
}

func (r *gymStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.gyms[id]; !ok {
		return database.ErrNoDocument
	}
	journal(ctx, r.s.gyms, id)
	delete(r.s.gyms, id)
	return nil
}

type serviceStore struct{ s *Store }

func (r *serviceStore) Create(ctx context.Context, svc *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	if _, ok := r.s.services[svc.ID]; ok {
		return fmt.Errorf("insert service: %w", database.ErrDuplicateKey)
	}
	svc.CreatedAt = time.Now()
	journal(ctx, r.s.services, svc.ID)
	r.s.services[svc.ID] = *svc
	return nil
}

func (r *serviceStore) GetByID(_ context.Context, id string) (*models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, fmt.Errorf("fetch service %s: %w", id, database.ErrNoDocument)
	}
	return &svc, nil
}

func (r *serviceStore) GetByIDs(_ context.Context, ids []string) ([]models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.Service{}
	seen := map[string]bool{}
	for _, id := range ids {
		if svc, ok := r.s.services[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *serviceStore) List(_ context.Context) ([]models.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Service, 0, len(r.s.services))
	for _, svc := range r.s.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *serviceStore) Update(ctx context.Context, svc *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.services[svc.ID]
	if !ok {
		return fmt.Errorf("update service %s: %w", svc.ID, database.ErrNoDocument)
	}
	svc.CreatedAt = cur.CreatedAt
	journal(ctx, r.s.services, svc.ID)
	r.s.services[svc.ID] = *svc
	return nil
}

func (r *serviceStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[id]; !ok {
		return database.ErrNoDocument
	}
	journal(ctx, r.s.services, id)
	delete(r.s.services, id)
	return nil
}
