package booking

import (
	"context"
	"fmt"

	"powerup/models"
	"powerup/utils"

	"go.uber.org/zap"
)

func clampScore(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

// Rate records the user's scores for a completed appointment they own.
func (s *DefaultBookingService) Rate(ctx context.Context, userID, appointmentID string, req models.RatingRequest) (*models.Rating, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, utils.FromStore(err, "appointment")
	}
	if appt.UserID != userID {
		return nil, fmt.Errorf("%w: appointment %s belongs to another user", utils.ErrForbidden, appointmentID)
	}
	if appt.Status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: only completed appointments can be rated; this one is %s", utils.ErrConflict, appt.Status)
	}
	exists, err := s.Ratings.Exists(ctx, appointmentID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: appointment %s is already rated", utils.ErrConflict, appointmentID)
	}

	gymID := ""
	if slot, err := s.Slots.GetByID(ctx, appt.SlotID); err == nil {
		gymID = slot.GymID
	} else if t, err := s.Trainers.GetByID(ctx, appt.TrainerID); err == nil {
		gymID = t.GymID
	}

	rating := &models.Rating{
		AppointmentID: appointmentID,
		TrainerID:     appt.TrainerID,
		GymID:         gymID,
		UserID:        userID,
		TrainerRating: clampScore(req.TrainerRating),
		GymRating:     clampScore(req.GymRating),
	}
	if err := s.Ratings.Create(ctx, rating); err != nil {
		return nil, utils.FromStore(err, "rating")
	}
	s.Logger.Info("appointment rated", zap.String("appointmentID", appointmentID), zap.String("trainerID", appt.TrainerID))
	return rating, nil
}

// TrainerRatings returns the aggregate and the individual ratings of a trainer.
func (s *DefaultBookingService) TrainerRatings(ctx context.Context, trainerID string) (*models.RatingSummary, []models.Rating, error) {
	if _, err := s.Trainers.GetByID(ctx, trainerID); err != nil {
		return nil, nil, utils.FromStore(err, "trainer")
	}
	summary, err := s.Ratings.SummaryForTrainer(ctx, trainerID)
	if err != nil {
		return nil, nil, err
	}
	ratings, err := s.Ratings.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, nil, err
	}
	return summary, ratings, nil
}
