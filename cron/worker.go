package cron

import (
	"context"
	"fmt"
	"time"

	"powerup/services/notification"
	"powerup/services/tasks"
	"powerup/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitPushWorker runs the push delivery worker in background. Shut the
// returned server down on exit.
func InitPushWorker(notifSvc notification.NotificationService, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		utils.QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Named("asynq").Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendPush, handlePushTask(notifSvc, logger))

	// Start async worker with retry logic
	go func() {
		logger.Info("[PushWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("[PushWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[PushWorker] max retry attempts reached; push delivery disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
		}
	}()
	return srv
}

func handlePushTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParsePushPayload(task)
		if err != nil {
			logger.Error("[PushHandler] invalid payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}

		if err := notifSvc.DeliverPush(ctx, p); err != nil {
			logger.Warn("[PushHandler] delivery failed",
				zap.String("notificationID", p.NotificationID), zap.Error(err))
			return err
		}
		return nil
	}
}
