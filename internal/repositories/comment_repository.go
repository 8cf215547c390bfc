package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kamaumbugua/socialnet/backend/internal/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	AddComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB. It holds
// the database handle rather than a single collection because adding a
// comment also bumps the counter on the posts collection.
type MongoCommentRepository struct {
	db *mongo.Database
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{db: db}
}

// AddComment inserts the comment and increments the post's commentCount in
// a single transaction, so the counter can never drift from the inserted
// documents under concurrent writers.
func (r *MongoCommentRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()

	postID, err := primitive.ObjectIDFromHex(comment.PostID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.db.Collection("posts").UpdateOne(sc,
			bson.M{"_id": postID},
			bson.M{"$inc": bson.M{"commentCount": 1}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		if _, err := r.db.Collection("comments").InsertOne(sc, comment); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// GetCommentsByPostID retrieves all comments on a post, newest first
func (r *MongoCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.db.Collection("comments").Find(ctx, bson.M{"postId": postID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
