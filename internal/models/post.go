package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a post stored in MongoDB. LikeCount and CommentCount are
// denormalized and must always equal the number of like/comment documents
// referencing the post; UserImage is a snapshot of the owner's image URL at
// last sync.
type Post struct {
	ID           primitive.ObjectID `json:"postId,omitempty" bson:"_id,omitempty"`
	UserHandle   string             `json:"userHandle" bson:"userHandle"`
	Body         string             `json:"body" bson:"body"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	LikeCount    int                `json:"likeCount" bson:"likeCount"`
	CommentCount int                `json:"commentCount" bson:"commentCount"`
	UserImage    string             `json:"userImage" bson:"userImage"`
}

// PostWithComments is the single-post response shape: the post plus its
// comments ordered newest first.
type PostWithComments struct {
	Post     `bson:",inline"`
	Comments []Comment `json:"comments"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Body string `json:"body" validate:"required,min=1,max=280"`
}
