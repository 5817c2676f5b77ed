package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"powerup/models"
	"powerup/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptRejectsCompetitors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	morning := f.addSlot(t, time.Thursday, 10)

	a := f.book(t, "user-a", f.slot, "2025-01-09")
	b := f.book(t, "user-b", f.slot, "2025-01-09")
	nextWeek := f.book(t, "user-c", f.slot, "2025-01-16")
	otherSlot := f.book(t, "user-d", morning, "2025-01-09")

	got, err := f.svc.Accept(ctx, f.trainer.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, got.Status)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, monday.Equal(*got.UpdatedAt))

	assert.Equal(t, models.StatusAccepted, f.status(t, a.ID))
	assert.Equal(t, models.StatusRejected, f.status(t, b.ID))
	rejected, err := f.repos.Appointments.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, rejected.UpdatedAt)
	assert.True(t, monday.Equal(*rejected.UpdatedAt), "competitors stamped with the service clock")
	assert.Equal(t, models.StatusAwaiting, f.status(t, nextWeek.ID))
	assert.Equal(t, models.StatusAwaiting, f.status(t, otherSlot.ID))

	inboxA := f.inbox(t, "user-a")
	require.Len(t, inboxA, 1)
	assert.Equal(t, "Appointment accepted", inboxA[0].Subject)

	inboxB := f.inbox(t, "user-b")
	require.Len(t, inboxB, 1)
	assert.Equal(t, "Appointment rejected", inboxB[0].Subject)
	assert.Contains(t, inboxB[0].Description, "booked by another user")

	assert.Empty(t, f.inbox(t, "user-c"))
	assert.Empty(t, f.inbox(t, "user-d"))
}

func TestAcceptTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.book(t, "user-a", f.slot, "2025-01-09")
	_, err := f.svc.Accept(ctx, f.trainer.ID, a.ID)
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, f.trainer.ID, a.ID)
	assert.ErrorIs(t, err, utils.ErrConflict)
	assert.Len(t, f.inbox(t, "user-a"), 1)
}

func TestAcceptBlockedByExistingAcceptance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.book(t, "user-a", f.slot, "2025-01-09")
	_, err := f.svc.Accept(ctx, f.trainer.ID, a.ID)
	require.NoError(t, err)

	// A stale awaiting row that slipped past the booking check.
	stale := &models.Appointment{
		TrainerID: f.trainer.ID,
		UserID:    "user-b",
		SlotID:    f.slot.ID,
		Date:      "2025-01-09",
		TimeOfDay: 19 * 60,
		Status:    models.StatusAwaiting,
	}
	require.NoError(t, f.repos.Appointments.Create(ctx, stale))

	_, err = f.svc.Accept(ctx, f.trainer.ID, stale.ID)
	assert.ErrorIs(t, err, utils.ErrConflict)
	assert.Equal(t, models.StatusAwaiting, f.status(t, stale.ID))
	assert.Empty(t, f.inbox(t, "user-b"))
}

func TestConcurrentAcceptsHaveOneWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.book(t, "user-a", f.slot, "2025-01-09")
	b := f.book(t, "user-b", f.slot, "2025-01-09")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{a.ID, b.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = f.svc.Accept(ctx, f.trainer.ID, id)
		}(i, id)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, utils.ErrConflict)
		}
	}
	assert.Equal(t, 1, won)

	accepted, err := f.repos.Appointments.ListBySlotDate(ctx, f.slot.ID, "2025-01-09", models.StatusAccepted)
	require.NoError(t, err)
	assert.Len(t, accepted, 1)
	assert.Len(t, f.inbox(t, "user-a"), 1)
	assert.Len(t, f.inbox(t, "user-b"), 1)
}

func TestResolveChecksOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "user-a", f.slot, "2025-01-09")

	_, err := f.svc.Accept(ctx, "another-trainer", a.ID)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = f.svc.Reject(ctx, f.trainer.ID, "missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	assert.Equal(t, models.StatusAwaiting, f.status(t, a.ID))
}

func TestReject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "user-a", f.slot, "2025-01-09")

	got, err := f.svc.Reject(ctx, f.trainer.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)

	inbox := f.inbox(t, "user-a")
	require.Len(t, inbox, 1)
	assert.Contains(t, inbox[0].Description, "rejected by the trainer")

	_, err = f.svc.Reject(ctx, f.trainer.ID, a.ID)
	assert.ErrorIs(t, err, utils.ErrConflict)
	_, err = f.svc.Accept(ctx, f.trainer.ID, a.ID)
	assert.ErrorIs(t, err, utils.ErrConflict)

	// The slot is free again for someone else.
	f.book(t, "user-b", f.slot, "2025-01-09")
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "user-a", f.slot, "2025-01-09")

	_, err := f.svc.Cancel(ctx, f.trainer.ID, a.ID)
	assert.ErrorIs(t, err, utils.ErrConflict, "awaiting cannot be cancelled")

	_, err = f.svc.Accept(ctx, f.trainer.ID, a.ID)
	require.NoError(t, err)

	got, err := f.svc.Cancel(ctx, f.trainer.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)

	var subjects []string
	for _, n := range f.inbox(t, "user-a") {
		subjects = append(subjects, n.Subject)
	}
	assert.ElementsMatch(t, []string{"Appointment accepted", "Appointment cancelled"}, subjects)

	booked, err := f.svc.BookedSlots(ctx, f.trainer.ID)
	require.NoError(t, err)
	assert.Empty(t, booked)
}

func TestProjections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.book(t, "user-a", f.slot, "2025-01-09")
	b := f.book(t, "user-b", f.slot, "2025-01-09")
	f.book(t, "user-a", f.slot, "2025-01-16")
	_, err := f.svc.Accept(ctx, f.trainer.ID, a.ID)
	require.NoError(t, err)

	booked, err := f.svc.BookedSlots(ctx, f.trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.BookedSlot{{SlotID: f.slot.ID, Date: "2025-01-09"}}, booked)

	mine, err := f.svc.MyBookings(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "2025-01-16", mine[0].Date)

	awaiting, err := f.svc.TrainerAppointments(ctx, f.trainer.ID, models.StatusAwaiting)
	require.NoError(t, err)
	require.Len(t, awaiting, 1)
	assert.Equal(t, "2025-01-16", awaiting[0].Date)

	all, err := f.svc.TrainerAppointments(ctx, f.trainer.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	rejected, err := f.svc.RejectedToday(ctx, "user-b")
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, b.ID, rejected[0].ID)

	rejected, err = f.svc.RejectedToday(ctx, "user-a")
	require.NoError(t, err)
	assert.Empty(t, rejected)

	_, err = f.svc.BookedSlots(ctx, "missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
