package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment in the comments collection.
// CommentID is a caller-supplied label, not the store key.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CommentID string             `bson:"commentId" json:"commentId"`
	UserID    string             `bson:"userId" json:"userId"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
