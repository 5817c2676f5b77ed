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

type slotStore struct{ s *Store }

func cloneSlot(sl models.Slot) models.Slot {
	sl.ServiceIDs = append([]string{}, sl.ServiceIDs...)
	return sl
}

func (r *slotStore) keyTaken(sl *models.Slot) bool {
	for _, other := range r.s.slots {
		if other.ID != sl.ID && other.TrainerID == sl.TrainerID &&
			other.DayOfWeek == sl.DayOfWeek && other.Hour == sl.Hour {
			return true
		}
	}
	return false
}

func (r *slotStore) Create(ctx context.Context, sl *models.Slot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sl.ID == "" {
		sl.ID = uuid.New().String()
	}
	if _, ok := r.s.slots[sl.ID]; ok || r.keyTaken(sl) {
		return fmt.Errorf("insert slot: %w", database.ErrDuplicateKey)
	}
	now := time.Now()
	sl.CreatedAt, sl.UpdatedAt = now, now
	journal(ctx, r.s.slots, sl.ID)
	r.s.slots[sl.ID] = cloneSlot(*sl)
	return nil
}

func (r *slotStore) GetByID(_ context.Context, id string) (*models.Slot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sl, ok := r.s.slots[id]
	if !ok {
		return nil, fmt.Errorf("fetch slot %s: %w", id, database.ErrNoDocument)
	}
	sl = cloneSlot(sl)
	return &sl, nil
}

func (r *slotStore) FindByKey(_ context.Context, trainerID string, dayOfWeek, hour int) (*models.Slot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sl := range r.s.slots {
		if sl.TrainerID == trainerID && sl.DayOfWeek == dayOfWeek && sl.Hour == hour {
			sl = cloneSlot(sl)
			return &sl, nil
		}
	}
	return nil, fmt.Errorf("fetch slot by key: %w", database.ErrNoDocument)
}

func (r *slotStore) ListByTrainer(_ context.Context, trainerID string) ([]models.Slot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Slot{}
	for _, sl := range r.s.slots {
		if sl.TrainerID == trainerID {
			out = append(out, cloneSlot(sl))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].Hour < out[j].Hour
	})
	return out, nil
}

func (r *slotStore) Update(ctx context.Context, sl *models.Slot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.slots[sl.ID]
	if !ok || cur.TrainerID != sl.TrainerID {
		return database.ErrNoDocument
	}
	if r.keyTaken(sl) {
		return fmt.Errorf("update slot: %w", database.ErrDuplicateKey)
	}
	sl.CreatedAt = cur.CreatedAt
	sl.UpdatedAt = time.Now()
	journal(ctx, r.s.slots, sl.ID)
	r.s.slots[sl.ID] = cloneSlot(*sl)
	return nil
}

// Lock only checks existence: transactions here are already serialized.
func (r *slotStore) Lock(_ context.Context, id string) error {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if _, ok := r.s.slots[id]; !ok {
		return fmt.Errorf("lock slot %s: %w", id, database.ErrNoDocument)
	}
	return nil
}

func (r *slotStore) ListByGym(_ context.Context, gymID string) ([]models.Slot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Slot{}
	for _, sl := range r.s.slots {
		if sl.GymID == gymID {
			out = append(out, cloneSlot(sl))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *slotStore) CountByService(_ context.Context, serviceID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, sl := range r.s.slots {
		for _, id := range sl.ServiceIDs {
			if id == serviceID {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *slotStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.slots[id]; !ok {
		return database.ErrNoDocument
	}
	journal(ctx, r.s.slots, id)
	delete(r.s.slots, id)
	return nil
}

func (r *slotStore) DeleteByTrainer(ctx context.Context, trainerID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, sl := range r.s.slots {
		if sl.TrainerID == trainerID {
			journal(ctx, r.s.slots, id)
			delete(r.s.slots, id)
			n++
		}
	}
	return n, nil
}

type appointmentStore struct{ s *Store }

func (r *appointmentStore) Create(ctx context.Context, a *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if _, ok := r.s.appointments[a.ID]; ok {
		return fmt.Errorf("insert appointment: %w", database.ErrDuplicateKey)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	journal(ctx, r.s.appointments, a.ID)
	r.s.appointments[a.ID] = *a
	return nil
}

func (r *appointmentStore) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, fmt.Errorf("fetch appointment %s: %w", id, database.ErrNoDocument)
	}
	return &a, nil
}

func (r *appointmentStore) TransitionStatus(ctx context.Context, id string, from, to models.AppointmentStatus, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.appointments[id]
	if !ok || a.Status != from {
		return false, nil
	}
	if to == models.StatusAccepted {
		for _, other := range r.s.appointments {
			if other.ID != id && other.SlotID == a.SlotID && other.Date == a.Date && other.Status == models.StatusAccepted {
				return false, fmt.Errorf("transition appointment: %w", database.ErrDuplicateKey)
			}
		}
	}
	journal(ctx, r.s.appointments, id)
	a.Status = to
	stamp := at
	a.UpdatedAt = &stamp
	if to == models.StatusCompleted {
		a.CompletedAt = &stamp
	}
	r.s.appointments[id] = a
	return true, nil
}

func (r *appointmentStore) filter(keep func(models.Appointment) bool, less func(a, b models.Appointment) bool) []models.Appointment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Appointment{}
	for _, a := range r.s.appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func chronological(a, b models.Appointment) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	if a.TimeOfDay != b.TimeOfDay {
		return a.TimeOfDay < b.TimeOfDay
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func hasStatus(s models.AppointmentStatus, statuses []models.AppointmentStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, st := range statuses {
		if s == st {
			return true
		}
	}
	return false
}

func (r *appointmentStore) ListBySlotDate(_ context.Context, slotID, date string, status models.AppointmentStatus) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool {
		return a.SlotID == slotID && a.Date == date && a.Status == status
	}, chronological), nil
}

func (r *appointmentStore) ListBySlot(_ context.Context, slotID string, statuses ...models.AppointmentStatus) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool {
		return a.SlotID == slotID && hasStatus(a.Status, statuses)
	}, chronological), nil
}

func (r *appointmentStore) ListByTrainer(_ context.Context, trainerID string, statuses ...models.AppointmentStatus) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool {
		return a.TrainerID == trainerID && hasStatus(a.Status, statuses)
	}, chronological), nil
}

func (r *appointmentStore) List(_ context.Context, statuses ...models.AppointmentStatus) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool {
		return hasStatus(a.Status, statuses)
	}, func(a, b models.Appointment) bool { return chronological(b, a) }), nil
}

func (r *appointmentStore) ListByUser(_ context.Context, userID string) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool {
		return a.UserID == userID
	}, func(a, b models.Appointment) bool { return chronological(b, a) }), nil
}

func (r *appointmentStore) ListDue(_ context.Context, date string) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool {
		return a.Date <= date && !a.Status.Terminal()
	}, chronological), nil
}

func (r *appointmentStore) ListBookedByTrainer(_ context.Context, trainerID, fromDate string) ([]models.BookedSlot, error) {
	appts := r.filter(func(a models.Appointment) bool {
		return a.TrainerID == trainerID && a.Status == models.StatusAccepted && a.Date >= fromDate
	}, chronological)
	out := make([]models.BookedSlot, 0, len(appts))
	for _, a := range appts {
		out = append(out, models.BookedSlot{SlotID: a.SlotID, Date: a.Date})
	}
	return out, nil
}

func (r *appointmentStore) ListRejectedSince(_ context.Context, userID string, since time.Time) ([]models.Appointment, error) {
	return r.filter(func(a models.Appointment) bool {
		return a.UserID == userID && a.Status == models.StatusRejected &&
			a.UpdatedAt != nil && !a.UpdatedAt.Before(since)
	}, func(a, b models.Appointment) bool { return a.UpdatedAt.After(*b.UpdatedAt) }), nil
}
