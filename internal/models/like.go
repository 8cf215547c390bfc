package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Like represents a like on a post. A unique index on (userHandle, postId)
// guarantees at most one like per user per post.
type Like struct {
	ID         primitive.ObjectID `json:"likeId,omitempty" bson:"_id,omitempty"`
	PostID     string             `json:"postId" bson:"postId"`
	UserHandle string             `json:"userHandle" bson:"userHandle"`
}
