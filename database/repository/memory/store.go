// Package memory is an in-process implementation of every repository. It
// backs the test suites and the STORAGE_DRIVER=memory mode.
package memory

import (
	"context"
	"sync"

	"powerup/database/repository"
	"powerup/models"
)

// Store holds all entity tables behind one lock. Transactions are serialized
// by a second lock. Writes made through a transaction context are journaled
// and undone when the transaction fails.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	gyms          map[string]models.Gym
	trainers      map[string]models.Trainer
	services      map[string]models.Service
	slots         map[string]models.Slot
	appointments  map[string]models.Appointment
	notifications map[string]models.Notification
	ratings       map[string]models.Rating
	users         map[string]models.User
}

func NewStore() *Store {
	return &Store{
		gyms:          map[string]models.Gym{},
		trainers:      map[string]models.Trainer{},
		services:      map[string]models.Service{},
		slots:         map[string]models.Slot{},
		appointments:  map[string]models.Appointment{},
		notifications: map[string]models.Notification{},
		ratings:       map[string]models.Rating{},
		users:         map[string]models.User{},
	}
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Gyms:          &gymStore{s},
		Trainers:      &trainerStore{s},
		Services:      &serviceStore{s},
		Slots:         &slotStore{s},
		Appointments:  &appointmentStore{s},
		Notifications: &notificationStore{s},
		Ratings:       &ratingStore{s},
		Users:         &userStore{s},
		Tx:            s,
	}
}

type txKey struct{}

// txLog collects the undo steps of one transaction. It is only touched while
// s.mu is held for writing.
type txLog struct {
	undo []func()
}

// RunInTx runs fn while holding the transaction lock. If fn fails, every
// write it made through its context is reverted before the error is
// returned. fn must not start a nested transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	log := &txLog{}
	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		s.mu.Lock()
		for i := len(log.undo) - 1; i >= 0; i-- {
			log.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// journal remembers the current row of table under id so that a failing
// transaction can put it back. Callers hold s.mu for writing.
func journal[V any](ctx context.Context, table map[string]V, id string) {
	log, ok := ctx.Value(txKey{}).(*txLog)
	if !ok {
		return
	}
	prev, existed := table[id]
	log.undo = append(log.undo, func() {
		if existed {
			table[id] = prev
		} else {
			delete(table, id)
		}
	})
}

// Ping satisfies the health monitor.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
