package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kamaumbugua/socialnet/backend/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByHandle(ctx context.Context, handle string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUserID(ctx context.Context, userID string) (*models.User, error)
	HandleExists(ctx context.Context, handle string) (bool, error)
	UpdateProfile(ctx context.Context, handle string, details map[string]string) error
	UpdateImageURL(ctx context.Context, handle, imageURL string) error
}

// MongoUserRepository implements UserRepository for MongoDB. The user's
// handle is the document key.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser creates a new user document keyed by handle
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// GetUserByHandle retrieves a user by handle
func (r *MongoUserRepository) GetUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": handle}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUserID retrieves a user by their auth-service UID
func (r *MongoUserRepository) GetUserByUserID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// HandleExists reports whether a user document with this handle exists
func (r *MongoUserRepository) HandleExists(ctx context.Context, handle string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": handle})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateProfile sets the given optional profile fields on the user document
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, handle string, details map[string]string) error {
	if len(details) == 0 {
		return nil
	}
	set := bson.M{}
	for field, value := range details {
		set[field] = value
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": handle}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateImageURL updates the user's profile image URL
func (r *MongoUserRepository) UpdateImageURL(ctx context.Context, handle, imageURL string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": handle}, bson.M{"$set": bson.M{"imageUrl": imageURL}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
