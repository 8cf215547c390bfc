package triggers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kamaumbugua/socialnet/backend/internal/models"
	"github.com/kamaumbugua/socialnet/backend/internal/repositories"
)

// Reactions holds the change-reaction handlers: the compensating writes
// that keep notifications and denormalized fields in sync with the
// documents clients create and delete. Each handler is idempotent and
// tolerates its targets already being absent, so events may be delivered
// more than once.
type Reactions struct {
	store repositories.TriggerStore
}

// NewReactions creates the reaction set over the given store
func NewReactions(store repositories.TriggerStore) *Reactions {
	return &Reactions{store: store}
}

// OnLikeCreated creates a Like notification for the post owner. Liking your
// own post, or a post that no longer exists, produces nothing.
func (r *Reactions) OnLikeCreated(ctx context.Context, like models.Like) error {
	post, err := r.store.GetPost(ctx, like.PostID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil
		}
		return err
	}
	if post.UserHandle == like.UserHandle {
		return nil
	}

	return r.store.CreateNotification(ctx, &models.Notification{
		ID:        like.ID,
		Recipient: post.UserHandle,
		Sender:    like.UserHandle,
		Type:      models.NotificationTypeLike,
		PostID:    like.PostID,
		Read:      false,
		CreatedAt: time.Now(),
	})
}

// OnCommentCreated creates a Comment notification for the post owner under
// the same rules as OnLikeCreated
func (r *Reactions) OnCommentCreated(ctx context.Context, comment models.Comment) error {
	post, err := r.store.GetPost(ctx, comment.PostID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil
		}
		return err
	}
	if post.UserHandle == comment.UserHandle {
		return nil
	}

	return r.store.CreateNotification(ctx, &models.Notification{
		ID:        comment.ID,
		Recipient: post.UserHandle,
		Sender:    comment.UserHandle,
		Type:      models.NotificationTypeComment,
		PostID:    comment.PostID,
		Read:      false,
		CreatedAt: time.Now(),
	})
}

// OnLikeDeleted removes the notification sharing the deleted like's ID.
// There is none when the like was on the liker's own post.
func (r *Reactions) OnLikeDeleted(ctx context.Context, likeID primitive.ObjectID) error {
	return r.store.DeleteNotification(ctx, likeID)
}

// OnUserImageChanged propagates the new profile image to every post the
// user owns
func (r *Reactions) OnUserImageChanged(ctx context.Context, handle, imageURL string) error {
	return r.store.SyncUserImage(ctx, handle, imageURL)
}

// OnPostDeleted removes every comment, like and notification referencing
// the deleted post
func (r *Reactions) OnPostDeleted(ctx context.Context, postID string) error {
	return r.store.DeletePostDependents(ctx, postID)
}
