package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message represents a direct message between two users
type Message struct {
	ID        primitive.ObjectID `json:"messageId,omitempty" bson:"_id,omitempty"`
	Sender    string             `json:"sender" bson:"sender"`
	Recipient string             `json:"recipient" bson:"recipient"`
	Body      string             `json:"body" bson:"body"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateMessageRequest defines the request body for sending a direct message
type CreateMessageRequest struct {
	Body string `json:"body" validate:"required,min=1,max=1000"`
}

// SenderProfile is the trimmed profile returned alongside a conversation
type SenderProfile struct {
	Handle    string    `json:"handle"`
	Bio       string    `json:"bio,omitempty"`
	Website   string    `json:"website,omitempty"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
