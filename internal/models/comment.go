package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a post
type Comment struct {
	ID         primitive.ObjectID `json:"commentId,omitempty" bson:"_id,omitempty"`
	PostID     string             `json:"postId" bson:"postId"`
	UserHandle string             `json:"userHandle" bson:"userHandle"`
	Body       string             `json:"body" bson:"body"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UserImage  string             `json:"userImage,omitempty" bson:"userImage,omitempty"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=500"`
}
