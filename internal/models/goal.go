package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal statuses accepted by the API
const (
	GoalStatusPending    = "pending"
	GoalStatusInProgress = "in progress"
	GoalStatusCompleted  = "completed"
)

// Goal priorities accepted by the API
const (
	GoalPriorityLow    = "low"
	GoalPriorityMedium = "medium"
	GoalPriorityHigh   = "high"
)

// Goal represents a personal goal in the goals collection
type Goal struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	DueDate     time.Time          `bson:"dueDate" json:"dueDate"`
	Priority    string             `bson:"priority" json:"priority"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
