package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CheckpointStore persists change-stream resume tokens so the watcher can
// pick up where it left off after a stream reopen or a process restart.
type CheckpointStore interface {
	LoadResumeToken(ctx context.Context, stream string) (bson.Raw, error)
	SaveResumeToken(ctx context.Context, stream string, token bson.Raw) error
}

// MongoCheckpointStore implements CheckpointStore on a checkpoints
// collection, one document per watched stream keyed by stream name.
type MongoCheckpointStore struct {
	collection *mongo.Collection
}

// NewMongoCheckpointStore creates a new MongoCheckpointStore
func NewMongoCheckpointStore(db *mongo.Database) *MongoCheckpointStore {
	return &MongoCheckpointStore{collection: db.Collection("checkpoints")}
}

type checkpointDoc struct {
	Stream    string    `bson:"_id"`
	Token     bson.Raw  `bson:"token"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// LoadResumeToken returns the last saved token for a stream, or nil when the
// stream has never been checkpointed
func (s *MongoCheckpointStore) LoadResumeToken(ctx context.Context, stream string) (bson.Raw, error) {
	var doc checkpointDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": stream}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return doc.Token, nil
}

// SaveResumeToken upserts the stream's resume token
func (s *MongoCheckpointStore) SaveResumeToken(ctx context.Context, stream string, token bson.Raw) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": stream},
		bson.M{"$set": bson.M{"token": token, "updatedAt": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}
