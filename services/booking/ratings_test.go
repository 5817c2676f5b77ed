package booking

import (
	"context"
	"testing"
	"time"

	"powerup/models"
	"powerup/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedAppointment(t *testing.T, f *fixture, userID string) *models.Appointment {
	t.Helper()
	ctx := context.Background()
	appt := f.book(t, userID, f.slot, "2025-01-09")
	_, err := f.svc.Accept(ctx, f.trainer.ID, appt.ID)
	require.NoError(t, err)
	_, err = f.svc.FinalizeOverdue(ctx, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return appt
}

func TestRate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	appt := completedAppointment(t, f, "user-a")

	rating, err := f.svc.Rate(ctx, "user-a", appt.ID, models.RatingRequest{TrainerRating: 9, GymRating: 0})
	require.NoError(t, err)
	assert.Equal(t, 5, rating.TrainerRating)
	assert.Equal(t, 1, rating.GymRating)
	assert.Equal(t, f.trainer.ID, rating.TrainerID)
	assert.Equal(t, f.gym.ID, rating.GymID)

	_, err = f.svc.Rate(ctx, "user-a", appt.ID, models.RatingRequest{TrainerRating: 3, GymRating: 3})
	assert.ErrorIs(t, err, utils.ErrConflict)

	summary, ratings, err := f.svc.TrainerRatings(ctx, f.trainer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
	assert.InDelta(t, 5.0, summary.AvgTrainerRating, 0.001)
	assert.InDelta(t, 1.0, summary.AvgGymRating, 0.001)
	assert.Len(t, ratings, 1)
}

func TestRateFallsBackToTrainerGym(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	appt := completedAppointment(t, f, "user-a")
	require.NoError(t, f.repos.Slots.Delete(ctx, f.slot.ID))

	rating, err := f.svc.Rate(ctx, "user-a", appt.ID, models.RatingRequest{TrainerRating: 4, GymRating: 4})
	require.NoError(t, err)
	assert.Equal(t, f.trainer.GymID, rating.GymID)
}

func TestRateRequiresCompletedOwnAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pending := f.book(t, "user-a", f.slot, "2025-01-16")

	_, err := f.svc.Rate(ctx, "user-a", pending.ID, models.RatingRequest{TrainerRating: 5, GymRating: 5})
	assert.ErrorIs(t, err, utils.ErrConflict)

	done := completedAppointment(t, f, "user-b")
	_, err = f.svc.Rate(ctx, "user-a", done.ID, models.RatingRequest{TrainerRating: 5, GymRating: 5})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = f.svc.Rate(ctx, "user-a", "missing", models.RatingRequest{})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, _, err = f.svc.TrainerRatings(ctx, "missing")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestClampScore(t *testing.T) {
	for in, want := range map[int]int{-3: 1, 0: 1, 1: 1, 3: 3, 5: 5, 6: 5} {
		assert.Equal(t, want, clampScore(in), "clampScore(%d)", in)
	}
}
