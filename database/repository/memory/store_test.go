package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"powerup/database"
	"powerup/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotKeyIsUnique(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	first := &models.Slot{TrainerID: "t1", DayOfWeek: 1, Hour: 9, ServiceIDs: []string{"s1"}}
	require.NoError(t, repos.Slots.Create(ctx, first))
	err := repos.Slots.Create(ctx, &models.Slot{TrainerID: "t1", DayOfWeek: 1, Hour: 9})
	assert.ErrorIs(t, err, database.ErrDuplicateKey)
	require.NoError(t, repos.Slots.Create(ctx, &models.Slot{TrainerID: "t2", DayOfWeek: 1, Hour: 9}))

	// Returned slots do not alias stored ones.
	got, err := repos.Slots.GetByID(ctx, first.ID)
	require.NoError(t, err)
	got.ServiceIDs[0] = "mutated"
	again, err := repos.Slots.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, again.ServiceIDs)
}

func TestTransitionStatus(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()
	at := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	a := &models.Appointment{SlotID: "s1", Date: "2025-01-09", Status: models.StatusAwaiting}
	b := &models.Appointment{SlotID: "s1", Date: "2025-01-09", Status: models.StatusAwaiting}
	require.NoError(t, repos.Appointments.Create(ctx, a))
	require.NoError(t, repos.Appointments.Create(ctx, b))

	ok, err := repos.Appointments.TransitionStatus(ctx, a.ID, models.StatusAwaiting, models.StatusAccepted, at)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.Appointments.TransitionStatus(ctx, a.ID, models.StatusAwaiting, models.StatusRejected, at)
	require.NoError(t, err)
	assert.False(t, ok, "stale from status")

	_, err = repos.Appointments.TransitionStatus(ctx, b.ID, models.StatusAwaiting, models.StatusAccepted, at)
	assert.ErrorIs(t, err, database.ErrDuplicateKey, "one accepted per slot and date")

	ok, err = repos.Appointments.TransitionStatus(ctx, a.ID, models.StatusAccepted, models.StatusCompleted, at)
	require.NoError(t, err)
	require.True(t, ok)
	done, err := repos.Appointments.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, at, *done.CompletedAt)
}

func TestListDue(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()
	for _, a := range []models.Appointment{
		{Date: "2025-01-08", Status: models.StatusAccepted},
		{Date: "2025-01-09", Status: models.StatusAwaiting},
		{Date: "2025-01-09", Status: models.StatusCompleted},
		{Date: "2025-01-11", Status: models.StatusAwaiting},
	} {
		a := a
		require.NoError(t, repos.Appointments.Create(ctx, &a))
	}

	due, err := repos.Appointments.ListDue(ctx, "2025-01-10")
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "2025-01-08", due[0].Date)
	assert.Equal(t, "2025-01-09", due[1].Date)
}

func TestTrainerAccountLinkIsUnique(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	require.NoError(t, repos.Trainers.Create(ctx, &models.Trainer{Name: "A", UserID: "u1"}))
	assert.ErrorIs(t, repos.Trainers.Create(ctx, &models.Trainer{Name: "B", UserID: "u1"}), database.ErrDuplicateKey)
	require.NoError(t, repos.Trainers.Create(ctx, &models.Trainer{Name: "C"}))
	require.NoError(t, repos.Trainers.Create(ctx, &models.Trainer{Name: "D"}))
}

func TestRunInTxPropagatesErrors(t *testing.T) {
	s := NewStore()
	boom := errors.New("boom")
	err := s.RunInTx(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = s.RunInTx(ctx, func(context.Context) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	s := NewStore()
	repos := s.Repositories()
	ctx := context.Background()

	kept := &models.Slot{TrainerID: "t1", DayOfWeek: 1, Hour: 9, ServiceIDs: []string{"s1"}}
	require.NoError(t, repos.Slots.Create(ctx, kept))
	appt := &models.Appointment{SlotID: kept.ID, UserID: "u1", Date: "2025-01-06", Status: models.StatusAwaiting}
	require.NoError(t, repos.Appointments.Create(ctx, appt))

	boom := errors.New("boom")
	var added *models.Slot
	err := s.RunInTx(ctx, func(ctx context.Context) error {
		added = &models.Slot{TrainerID: "t1", DayOfWeek: 2, Hour: 9, ServiceIDs: []string{"s1"}}
		if err := repos.Slots.Create(ctx, added); err != nil {
			return err
		}
		if err := repos.Slots.Delete(ctx, kept.ID); err != nil {
			return err
		}
		if _, err := repos.Appointments.TransitionStatus(ctx, appt.ID, models.StatusAwaiting, models.StatusRejected, time.Now()); err != nil {
			return err
		}
		if err := repos.Notifications.Create(ctx, &models.Notification{UserID: "u1", Subject: "rejected"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repos.Slots.GetByID(ctx, added.ID)
	assert.ErrorIs(t, err, database.ErrNoDocument, "insert undone")
	_, err = repos.Slots.GetByID(ctx, kept.ID)
	assert.NoError(t, err, "delete undone")
	got, err := repos.Appointments.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAwaiting, got.Status)
	assert.Nil(t, got.UpdatedAt)
	inbox, err := repos.Notifications.ListByUser(ctx, "u1", false)
	require.NoError(t, err)
	assert.Empty(t, inbox)

	// A successful transaction keeps its writes, and writes outside one are never journaled.
	require.NoError(t, s.RunInTx(ctx, func(ctx context.Context) error {
		return repos.Notifications.Create(ctx, &models.Notification{UserID: "u1", Subject: "kept"})
	}))
	require.NoError(t, repos.Notifications.Create(ctx, &models.Notification{UserID: "u1", Subject: "outside"}))
	inbox, err = repos.Notifications.ListByUser(ctx, "u1", false)
	require.NoError(t, err)
	assert.Len(t, inbox, 2)
}

func TestTrainerServiceLinks(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	a := &models.Trainer{Name: "A", ServiceIDs: []string{"yoga"}}
	b := &models.Trainer{Name: "B", ServiceIDs: []string{"yoga", "boxing"}}
	require.NoError(t, repos.Trainers.Create(ctx, a))
	require.NoError(t, repos.Trainers.Create(ctx, b))

	require.NoError(t, repos.Trainers.AddService(ctx, a.ID, "boxing"))
	require.NoError(t, repos.Trainers.AddService(ctx, a.ID, "boxing"))
	assert.ErrorIs(t, repos.Trainers.AddService(ctx, "missing", "boxing"), database.ErrNoDocument)

	// Profile updates leave the links alone.
	a.Name, a.ServiceIDs = "A2", nil
	require.NoError(t, repos.Trainers.Update(ctx, a))
	got, err := repos.Trainers.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"yoga", "boxing"}, got.ServiceIDs)

	n, err := repos.Trainers.RemoveServiceFromAll(ctx, "yoga")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	require.NoError(t, repos.Trainers.RemoveService(ctx, b.ID, "boxing"))

	got, err = repos.Trainers.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ServiceIDs)
}
