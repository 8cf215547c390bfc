package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kamaumbugua/socialnet/backend/internal/models"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	GetLike(ctx context.Context, handle, postID string) (*models.Like, error)
	DeleteLike(ctx context.Context, id primitive.ObjectID) error
	GetLikesByUserHandle(ctx context.Context, handle string) ([]models.Like, error)
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection("likes")}
}

// CreateLike inserts a like. The unique (userHandle, postId) index makes
// the first concurrent writer win; later ones get ErrDuplicate.
func (r *MongoLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, like)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// GetLike retrieves the like a user placed on a post, if any
func (r *MongoLikeRepository) GetLike(ctx context.Context, handle, postID string) (*models.Like, error) {
	var like models.Like
	err := r.collection.FindOne(ctx, bson.M{"userHandle": handle, "postId": postID}).Decode(&like)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &like, nil
}

// DeleteLike removes a like by ID
func (r *MongoLikeRepository) DeleteLike(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLikesByUserHandle retrieves every like placed by a user
func (r *MongoLikeRepository) GetLikesByUserHandle(ctx context.Context, handle string) ([]models.Like, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userHandle": handle})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	likes := []models.Like{}
	if err = cursor.All(ctx, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}
