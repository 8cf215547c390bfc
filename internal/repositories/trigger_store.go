package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kamaumbugua/socialnet/backend/internal/models"
)

// TriggerStore is the write surface the change-reaction handlers run
// against. Every operation is idempotent so events can be redelivered.
type TriggerStore interface {
	GetPost(ctx context.Context, id string) (*models.Post, error)
	CreateNotification(ctx context.Context, notification *models.Notification) error
	DeleteNotification(ctx context.Context, id primitive.ObjectID) error
	SyncUserImage(ctx context.Context, handle, imageURL string) error
	DeletePostDependents(ctx context.Context, postID string) error
}

// MongoTriggerStore implements TriggerStore by composing the post and
// notification repositories plus a transactional cascade over the database.
type MongoTriggerStore struct {
	db            *mongo.Database
	posts         *MongoPostRepository
	notifications *MongoNotificationRepository
}

// NewMongoTriggerStore creates a new MongoTriggerStore
func NewMongoTriggerStore(db *mongo.Database) *MongoTriggerStore {
	return &MongoTriggerStore{
		db:            db,
		posts:         NewMongoPostRepository(db),
		notifications: NewMongoNotificationRepository(db),
	}
}

// GetPost retrieves a post by ID
func (s *MongoTriggerStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.GetPostByID(ctx, id)
}

// CreateNotification upserts a notification keyed by its source event ID
func (s *MongoTriggerStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	return s.notifications.CreateNotification(ctx, n)
}

// DeleteNotification removes a notification; absence is a no-op
func (s *MongoTriggerStore) DeleteNotification(ctx context.Context, id primitive.ObjectID) error {
	return s.notifications.DeleteByID(ctx, id)
}

// SyncUserImage propagates a changed profile image to the user's posts
func (s *MongoTriggerStore) SyncUserImage(ctx context.Context, handle, imageURL string) error {
	return s.posts.SyncUserImage(ctx, handle, imageURL)
}

// DeletePostDependents removes every comment, like and notification
// referencing the post in a single transaction, all or nothing.
func (s *MongoTriggerStore) DeletePostDependents(ctx context.Context, postID string) error {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"postId": postID}
		for _, name := range []string{"comments", "likes", "notifications"} {
			if _, err := s.db.Collection(name).DeleteMany(sc, filter); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}
