// File: database/repository/notification/interface.go
package notificationRepo

import (
	"context"

	"powerup/database"
	"powerup/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationRepository stores user inbox entries. Reads and writes that
// target a single notification are scoped to its recipient.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// ListByUser is newest first.
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo constructs a new MongoDB NotificationRepository.
func NewMongoNotificationRepo() NotificationRepository {
	return &mongoNotificationRepo{coll: database.DB().Collection("notifications")}
}
