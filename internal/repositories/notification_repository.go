package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kamaumbugua/socialnet/backend/internal/models"
)

// NotificationRepository defines the interface for notification operations.
// Notifications are written only by the change watcher; clients may only
// flip the read flag.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	GetByRecipient(ctx context.Context, recipient string, limit int64) ([]models.Notification, error)
	AllOwnedBy(ctx context.Context, recipient string, ids []primitive.ObjectID) (bool, error)
	MarkRead(ctx context.Context, ids []primitive.ObjectID) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// CreateNotification upserts the notification on its ID. The ID equals the
// ID of the like or comment that produced it, so replaying the same event
// is a no-op rather than a duplicate.
func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": n.ID},
		bson.M{"$setOnInsert": bson.M{
			"recipient": n.Recipient,
			"sender":    n.Sender,
			"type":      n.Type,
			"postId":    n.PostID,
			"read":      n.Read,
			"createdAt": n.CreatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

// DeleteByID removes a notification. Absence is not an error; the cascade
// watcher may already have removed it.
func (r *MongoNotificationRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// GetByRecipient retrieves the recipient's notifications, newest first
func (r *MongoNotificationRepository) GetByRecipient(ctx context.Context, recipient string, limit int64) ([]models.Notification, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"recipient": recipient}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// AllOwnedBy reports whether every given notification belongs to recipient
func (r *MongoNotificationRepository) AllOwnedBy(ctx context.Context, recipient string, ids []primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"_id":       bson.M{"$in": ids},
		"recipient": recipient,
	})
	if err != nil {
		return false, err
	}
	return count == int64(len(ids)), nil
}

// MarkRead flips the read flag on the given notifications in one batch
func (r *MongoNotificationRepository) MarkRead(ctx context.Context, ids []primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}
