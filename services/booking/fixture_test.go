package booking

import (
	"context"
	"testing"
	"time"

	"powerup/database/repository"
	"powerup/database/repository/memory"
	"powerup/models"
	"powerup/services/notification"

	"github.com/stretchr/testify/require"
)

const trainerAccount = "trainer-account"

type fixture struct {
	repos   *repository.Repositories
	svc     *DefaultBookingService
	gym     *models.Gym
	service *models.Service
	trainer *models.Trainer
	slot    *models.Slot // Thursday 19:00
}

// Monday before the Thursday the tests book.
var monday = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	gym := &models.Gym{Name: "Central", OpeningTime: 8 * 60, ClosingTime: 20 * 60}
	require.NoError(t, repos.Gyms.Create(ctx, gym))
	service := &models.Service{Name: "Pilates"}
	require.NoError(t, repos.Services.Create(ctx, service))
	trainer := &models.Trainer{Name: "Ada", PhoneNumber: "0700000000", GymID: gym.ID, UserID: trainerAccount}
	require.NoError(t, repos.Trainers.Create(ctx, trainer))

	f := &fixture{repos: repos, gym: gym, service: service, trainer: trainer}
	f.slot = f.addSlot(t, time.Thursday, 19)

	notifier := notification.NewDefaultNotificationService(repos, nil)
	svc, err := NewDefaultBookingService(repos, notifier, time.UTC, nil)
	require.NoError(t, err)
	svc.Now = func() time.Time { return monday }
	f.svc = svc
	return f
}

func (f *fixture) addSlot(t *testing.T, day time.Weekday, hour int) *models.Slot {
	t.Helper()
	slot := &models.Slot{
		TrainerID:  f.trainer.ID,
		GymID:      f.gym.ID,
		DayOfWeek:  int(day),
		Hour:       hour,
		ServiceIDs: []string{f.service.ID},
	}
	require.NoError(t, f.repos.Slots.Create(context.Background(), slot))
	return slot
}

func (f *fixture) book(t *testing.T, userID string, slot *models.Slot, date string) *models.Appointment {
	t.Helper()
	appt, err := f.svc.Book(context.Background(), models.BookingRequest{
		TrainerID: f.trainer.ID,
		SlotID:    slot.ID,
		Date:      date,
		UserID:    userID,
	})
	require.NoError(t, err)
	return appt
}

func (f *fixture) inbox(t *testing.T, userID string) []models.Notification {
	t.Helper()
	list, err := f.repos.Notifications.ListByUser(context.Background(), userID, false)
	require.NoError(t, err)
	return list
}

func (f *fixture) status(t *testing.T, id string) models.AppointmentStatus {
	t.Helper()
	appt, err := f.repos.Appointments.GetByID(context.Background(), id)
	require.NoError(t, err)
	return appt.Status
}
