package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types
const (
	NotificationTypeLike    = "Like"
	NotificationTypeComment = "Comment"
)

// Notification represents a user notification. Its ID equals the ID of the
// like or comment that produced it, so unliking can delete the matching
// notification by key.
type Notification struct {
	ID        primitive.ObjectID `json:"notificationId,omitempty" bson:"_id,omitempty"`
	Recipient string             `json:"recipient" bson:"recipient"`
	Sender    string             `json:"sender" bson:"sender"`
	Type      string             `json:"type" bson:"type"`
	PostID    string             `json:"postId" bson:"postId"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// MarkNotificationsRequest carries the notification IDs to mark as read
type MarkNotificationsRequest struct {
	Notifications []string `json:"notifications" validate:"required,min=1,dive,required"`
}
