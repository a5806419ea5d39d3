package repository

import (
	"context"
	"fmt"
	"time"

	"propmart/database"
	"propmart/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationRepository defines the interface for notification data access.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	MarkSent(ctx context.Context, id string) error
	ListByBuyer(ctx context.Context, buyerID string) ([]models.Notification, error)
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo returns a NotificationRepository backed by the
// notifications collection.
func NewMongoNotificationRepo() NotificationRepository {
	return &mongoNotificationRepo{coll: database.Collection("notifications")}
}

func (r *mongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedAt = time.Now()
	n.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *mongoNotificationRepo) MarkSent(ctx context.Context, id string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"sent": true, "updated_at": time.Now()}},
	)
	return err
}

func (r *mongoNotificationRepo) ListByBuyer(ctx context.Context, buyerID string) ([]models.Notification, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"buyer_id": buyerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
