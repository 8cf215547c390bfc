package triggers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kamaumbugua/socialnet/backend/internal/models"
	"github.com/kamaumbugua/socialnet/backend/internal/repositories"
)

const maxReactionRetries = 5

// Watcher consumes MongoDB change streams on the likes, comments, users and
// posts collections and dispatches each event to the matching reaction.
// Delivery is at-least-once: the resume token is checkpointed after each
// handled event and streams reopen from the last checkpoint, so events
// arriving during a reopen gap or a process restart are replayed rather than
// skipped. A reaction that keeps failing after bounded exponential-backoff
// retries is logged as dead-lettered, never re-raised into the stream.
type Watcher struct {
	db          *mongo.Database
	reactions   *Reactions
	checkpoints repositories.CheckpointStore
}

// NewWatcher creates a Watcher over the given database
func NewWatcher(db *mongo.Database, reactions *Reactions, checkpoints repositories.CheckpointStore) *Watcher {
	return &Watcher{db: db, reactions: reactions, checkpoints: checkpoints}
}

// Run opens one change stream per watched collection and blocks until the
// context is cancelled
func (w *Watcher) Run(ctx context.Context) {
	var wg sync.WaitGroup

	loops := map[string]func(context.Context, bson.Raw){
		"likes":    w.handleLikeEvent,
		"comments": w.handleCommentEvent,
		"users":    w.handleUserEvent,
		"posts":    w.handlePostEvent,
	}

	for name, handle := range loops {
		wg.Add(1)
		go func(name string, handle func(context.Context, bson.Raw)) {
			defer wg.Done()
			w.watch(ctx, name, handle)
		}(name, handle)
	}

	wg.Wait()
}

// watch runs a single change-stream loop. The stream always opens from the
// last checkpointed resume token, so a reopen or a restart replays the
// events the previous stream never delivered.
func (w *Watcher) watch(ctx context.Context, collection string, handle func(context.Context, bson.Raw)) {
	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.D{
		{Key: "operationType", Value: bson.M{"$in": []string{"insert", "update", "delete"}}},
	}}}}

	token, err := w.checkpoints.LoadResumeToken(ctx, collection)
	if err != nil {
		log.Printf("checkpoint for %s could not be loaded: %v, starting from now", collection, err)
		token = nil
	}

	for {
		stream, err := w.db.Collection(collection).Watch(ctx, pipeline, resumeOptions(token))
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("change stream on %s failed to open: %v", collection, err)
			if token != nil {
				// The checkpoint may point before the start of the oplog.
				// Dropping it loses the gap but keeps the stream alive.
				log.Printf("discarding unusable checkpoint for %s, events in the gap are lost", collection)
				token = nil
			}
			select {
			case <-time.After(2 * time.Second):
				continue
			case <-ctx.Done():
				return
			}
		}

		log.Printf("watching collection %s", collection)
		for stream.Next(ctx) {
			handle(ctx, stream.Current)
			token = stream.ResumeToken()
			w.checkpoint(ctx, collection, token)
		}
		stream.Close(context.Background())

		if ctx.Err() != nil {
			return
		}
		log.Printf("change stream on %s closed: %v, reopening", collection, stream.Err())
	}
}

// resumeOptions builds the stream options for a checkpointed token; a nil
// token opens the stream at the current point in time
func resumeOptions(token bson.Raw) *options.ChangeStreamOptions {
	opts := options.ChangeStream()
	if token != nil {
		opts.SetResumeAfter(token)
	}
	return opts
}

// checkpoint persists the resume token. A failed save is only logged: the
// event itself was already handled, and at-least-once delivery means a stale
// checkpoint causes replay, never loss.
func (w *Watcher) checkpoint(ctx context.Context, collection string, token bson.Raw) {
	if token == nil {
		return
	}
	if err := w.checkpoints.SaveResumeToken(ctx, collection, token); err != nil {
		log.Printf("checkpoint for %s could not be saved: %v", collection, err)
	}
}

// react runs a reaction under bounded exponential-backoff retry and logs
// the event as dead-lettered on exhaustion
func (w *Watcher) react(ctx context.Context, label string, fn func(context.Context) error) {
	operation := func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		return fn(ctx)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxReactionRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil && ctx.Err() == nil {
		log.Printf("DEAD-LETTER %s: retries exhausted: %v", label, err)
	}
}

type documentKey struct {
	ID bson.RawValue `bson:"_id"`
}

type changeEvent struct {
	OperationType     string      `bson:"operationType"`
	DocumentKey       documentKey `bson:"documentKey"`
	FullDocument      bson.Raw    `bson:"fullDocument"`
	UpdateDescription struct {
		UpdatedFields bson.Raw `bson:"updatedFields"`
	} `bson:"updateDescription"`
}

func decodeEvent(raw bson.Raw) (changeEvent, bool) {
	var event changeEvent
	if err := bson.Unmarshal(raw, &event); err != nil {
		log.Printf("undecodable change event: %v", err)
		return event, false
	}
	return event, true
}

func (w *Watcher) handleLikeEvent(ctx context.Context, raw bson.Raw) {
	event, ok := decodeEvent(raw)
	if !ok {
		return
	}

	switch event.OperationType {
	case "insert":
		var like models.Like
		if err := bson.Unmarshal(event.FullDocument, &like); err != nil {
			log.Printf("undecodable like document: %v", err)
			return
		}
		w.react(ctx, "like created "+like.ID.Hex(), func(ctx context.Context) error {
			return w.reactions.OnLikeCreated(ctx, like)
		})
	case "delete":
		var likeID primitive.ObjectID
		if err := event.DocumentKey.ID.Unmarshal(&likeID); err != nil {
			log.Printf("undecodable like key: %v", err)
			return
		}
		w.react(ctx, "like deleted "+likeID.Hex(), func(ctx context.Context) error {
			return w.reactions.OnLikeDeleted(ctx, likeID)
		})
	}
}

func (w *Watcher) handleCommentEvent(ctx context.Context, raw bson.Raw) {
	event, ok := decodeEvent(raw)
	if !ok || event.OperationType != "insert" {
		return
	}

	var comment models.Comment
	if err := bson.Unmarshal(event.FullDocument, &comment); err != nil {
		log.Printf("undecodable comment document: %v", err)
		return
	}
	w.react(ctx, "comment created "+comment.ID.Hex(), func(ctx context.Context) error {
		return w.reactions.OnCommentCreated(ctx, comment)
	})
}

func (w *Watcher) handleUserEvent(ctx context.Context, raw bson.Raw) {
	event, ok := decodeEvent(raw)
	if !ok || event.OperationType != "update" {
		return
	}

	// Only an actual image change triggers propagation
	imageValue, err := event.UpdateDescription.UpdatedFields.LookupErr("imageUrl")
	if err != nil {
		return
	}
	imageURL, ok := imageValue.StringValueOK()
	if !ok {
		return
	}

	var handle string
	if err := event.DocumentKey.ID.Unmarshal(&handle); err != nil {
		log.Printf("undecodable user key: %v", err)
		return
	}
	w.react(ctx, "user image changed "+handle, func(ctx context.Context) error {
		return w.reactions.OnUserImageChanged(ctx, handle, imageURL)
	})
}

func (w *Watcher) handlePostEvent(ctx context.Context, raw bson.Raw) {
	event, ok := decodeEvent(raw)
	if !ok || event.OperationType != "delete" {
		return
	}

	var postID primitive.ObjectID
	if err := event.DocumentKey.ID.Unmarshal(&postID); err != nil {
		log.Printf("undecodable post key: %v", err)
		return
	}
	w.react(ctx, "post deleted "+postID.Hex(), func(ctx context.Context) error {
		return w.reactions.OnPostDeleted(ctx, postID.Hex())
	})
}
