package trainer

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

// clock is the fixed "now" the service runs at in these tests.
var clock = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

type fixture struct {
	repos   *repository.Repositories
	svc     *DefaultTrainerService
	gym     *models.Gym
	yoga    *models.Service
	boxing  *models.Service
	trainer *models.Trainer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewStore().Repositories()

	gym := &models.Gym{Name: "Central", OpeningTime: 8 * 60, ClosingTime: 20 * 60}
	require.NoError(t, repos.Gyms.Create(ctx, gym))
	yoga := &models.Service{Name: "Yoga"}
	require.NoError(t, repos.Services.Create(ctx, yoga))
	boxing := &models.Service{Name: "Boxing"}
	require.NoError(t, repos.Services.Create(ctx, boxing))

	svc, err := NewDefaultTrainerService(repos, notification.NewDefaultNotificationService(repos, nil), nil)
	require.NoError(t, err)
	svc.Now = func() time.Time { return clock }

	tr, err := svc.CreateTrainer(ctx, models.CreateTrainerRequest{
		Name: "Ada", PhoneNumber: "0700000000", GymID: gym.ID, UserID: "trainer-account",
		ServiceIDs: []string{yoga.ID, boxing.ID},
	})
	require.NoError(t, err)

	return &fixture{repos: repos, svc: svc, gym: gym, yoga: yoga, boxing: boxing, trainer: tr}
}

func (f *fixture) slot(t *testing.T, day time.Weekday, hour int) *models.Slot {
	t.Helper()
	s, err := f.svc.CreateSlot(context.Background(), f.trainer.ID, models.SlotRequest{
		DayOfWeek:  int(day),
		Hour:       hour,
		ServiceIDs: []string{f.yoga.ID},
	})
	require.NoError(t, err)
	return s
}

// appointment stores an appointment directly in the given status.
func (f *fixture) appointment(t *testing.T, slot *models.Slot, userID, date string, status models.AppointmentStatus) *models.Appointment {
	t.Helper()
	a := &models.Appointment{
		TrainerID: slot.TrainerID,
		UserID:    userID,
		SlotID:    slot.ID,
		Date:      date,
		TimeOfDay: slot.Hour * 60,
		Status:    status,
	}
	require.NoError(t, f.repos.Appointments.Create(context.Background(), a))
	return a
}

func (f *fixture) inbox(t *testing.T, userID string) []models.Notification {
	t.Helper()
	list, err := f.repos.Notifications.ListByUser(context.Background(), userID, false)
	require.NoError(t, err)
	return list
}

func (f *fixture) status(t *testing.T, id string) models.AppointmentStatus {
	t.Helper()
	a, err := f.repos.Appointments.GetByID(context.Background(), id)
	require.NoError(t, err)
	return a.Status
}
