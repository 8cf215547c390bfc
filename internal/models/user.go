package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a registered account. The handle doubles as the document
// key in the users collection and never changes once chosen.
type User struct {
	Handle       string    `json:"handle" bson:"_id"`
	UserID       string    `json:"userId" bson:"userId"` // Firebase Auth UID
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	ImageURL     string    `json:"imageUrl" bson:"imageUrl"`
	Bio          string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Website      string    `json:"website,omitempty" bson:"website,omitempty"`
	Location     string    `json:"location,omitempty" bson:"location,omitempty"`
}

// UserWithPosts is the public profile response shape: the user's own fields
// at the top level with their posts attached
type UserWithPosts struct {
	User
	Posts []Post `json:"posts"`
}

// SignupRequest defines the request body for creating a new account
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Handle          string `json:"handle"`
}

// LoginRequest defines the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the optional profile fields a user may set
type UpdateProfileRequest struct {
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Website  string `json:"website,omitempty" validate:"omitempty,max=200"`
	Location string `json:"location,omitempty" validate:"omitempty,max=100"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	Handle string `json:"handle"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
