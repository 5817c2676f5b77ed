package booking

import (
	"context"
	"testing"
	"time"

	"powerup/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalizeOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	morning := f.addSlot(t, time.Thursday, 10)
	saturday := f.addSlot(t, time.Saturday, 9)

	accepted := f.book(t, "user-a", f.slot, "2025-01-09")
	_, err := f.svc.Accept(ctx, f.trainer.ID, accepted.ID)
	require.NoError(t, err)
	awaiting := f.book(t, "user-b", morning, "2025-01-09")
	future := f.book(t, "user-c", saturday, "2025-01-11")

	now := time.Date(2025, 1, 10, 6, 0, 0, 0, time.UTC)
	result, err := f.svc.FinalizeOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, models.SweepResult{Scanned: 2, Rejected: 1, Completed: 1}, result)

	done, err := f.repos.Appointments.GetByID(ctx, accepted.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(now))

	assert.Equal(t, models.StatusRejected, f.status(t, awaiting.ID))
	assert.Equal(t, models.StatusAwaiting, f.status(t, future.ID))

	inboxA := f.inbox(t, "user-a")
	require.Len(t, inboxA, 2)
	var rating *models.Notification
	for i := range inboxA {
		if inboxA[i].ActionType == models.ActionRating {
			rating = &inboxA[i]
		}
	}
	require.NotNil(t, rating, "completion carries a rating action")
	assert.Equal(t, accepted.ID, rating.ActionPayload)
	assert.Equal(t, "Appointment completed", rating.Subject)

	inboxB := f.inbox(t, "user-b")
	require.Len(t, inboxB, 1)
	assert.Contains(t, inboxB[0].Description, "missed schedule")
	assert.Empty(t, f.inbox(t, "user-c"))

	// A second run finds nothing left to do.
	result, err = f.svc.FinalizeOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, models.SweepResult{}, result)
}

func TestFinalizeOverdueWaitsForSessionEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	friday := f.addSlot(t, time.Friday, 19)

	appt := f.book(t, "user-a", friday, "2025-01-10")
	_, err := f.svc.Accept(ctx, f.trainer.ID, appt.ID)
	require.NoError(t, err)

	result, err := f.svc.FinalizeOverdue(ctx, time.Date(2025, 1, 10, 19, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, models.SweepResult{Scanned: 1, Skipped: 1}, result)
	assert.Equal(t, models.StatusAccepted, f.status(t, appt.ID))

	result, err = f.svc.FinalizeOverdue(ctx, time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, models.SweepResult{Scanned: 1, Completed: 1}, result)
	assert.Equal(t, models.StatusCompleted, f.status(t, appt.ID))
}

func TestFinalizeOverdueUsesSweepTimezone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	nairobi := time.FixedZone("EAT", 3*60*60)
	f.svc.Location = nairobi
	f.svc.Now = func() time.Time { return monday.In(nairobi) }

	appt := f.book(t, "user-a", f.slot, "2025-01-09")

	// 16:30 UTC is 19:30 in Nairobi: the session is still running.
	result, err := f.svc.FinalizeOverdue(ctx, time.Date(2025, 1, 9, 16, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, models.StatusAwaiting, f.status(t, appt.ID))

	result, err = f.svc.FinalizeOverdue(ctx, time.Date(2025, 1, 9, 17, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rejected)
	assert.Equal(t, models.StatusRejected, f.status(t, appt.ID))
}

func TestFinalizeOverdueHonoursCancelledContext(t *testing.T) {
	f := newFixture(t)
	f.book(t, "user-a", f.slot, "2025-01-09")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.svc.FinalizeOverdue(ctx, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, context.Canceled)
}
