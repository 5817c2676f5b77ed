package notification

import (
	"context"
	"time"

	"powerup/database/repository"
	"powerup/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Sink records a notification for a user. It is what the booking lifecycle
// depends on; calls made with a transaction context join that transaction.
type Sink interface {
	Send(ctx context.Context, userID, subject, description string, action *models.NotificationAction) error
}

// NotificationService is the inbox API exposed to users.
type NotificationService interface {
	Sink
	List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
	RegisterPushToken(ctx context.Context, userID, token string) error
	DeliverPush(ctx context.Context, payload models.PushPayload) error
}

// Enqueuer is the slice of *asynq.Client the service uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// PushSender is the slice of *messaging.Client the push worker uses.
type PushSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService persists notifications and, when a queue is
// configured, schedules their push delivery.
type DefaultNotificationService struct {
	Repo      repository.NotificationRepository
	Users     repository.UserRepository
	Queue     Enqueuer   // nil disables push delivery
	Push      PushSender // used by the worker only
	PushDelay time.Duration
	Logger    *zap.Logger
}

func NewDefaultNotificationService(repos *repository.Repositories, logger *zap.Logger) *DefaultNotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{
		Repo:      repos.Notifications,
		Users:     repos.Users,
		PushDelay: 2 * time.Second,
		Logger:    logger,
	}
}
