package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles accepted by the API
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an API user in the users collection.
// OAuthID is the external identity reference from the OAuth provider.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	OAuthID        string             `bson:"oauthId" json:"oauthId"`
	Role           string             `bson:"role" json:"role"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
}
