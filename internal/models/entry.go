package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry represents a journal entry in the entries collection
type Entry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Tags      []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Mood      string             `bson:"mood,omitempty" json:"mood,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
