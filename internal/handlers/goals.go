package handlers

import (
	"time"

	"github.com/daybookhq/daybook-backend/internal/models"
	"github.com/daybookhq/daybook-backend/internal/validation"
)

var goalRules = validation.Rules(
	validation.Field("userId").
		Required("userId is required").
		String("userId must be a string"),
	validation.Field("title").
		Required("Title is required").
		MinLength(3, "Title must be at least 3 characters long"),
	validation.Field("description").
		Required("Description is required").
		MinLength(5, "Description must be at least 5 characters long"),
	validation.Field("status").
		Required("Status is required").
		OneOf(
			[]string{models.GoalStatusPending, models.GoalStatusInProgress, models.GoalStatusCompleted},
			`Status must be one of "pending", "in progress" or "completed"`,
		),
	validation.Field("dueDate").
		Required("Due date is required").
		ISO8601("Due date must be a valid date"),
	validation.Field("priority").
		Required("Priority is required").
		OneOf(
			[]string{models.GoalPriorityLow, models.GoalPriorityMedium, models.GoalPriorityHigh},
			`Priority must be one of "low", "medium" or "high"`,
		),
)

func goalFromBody(body map[string]interface{}, createdAt time.Time) models.Goal {
	goal := models.Goal{
		UserID:      stringField(body, "userId"),
		Title:       stringField(body, "title"),
		Description: stringField(body, "description"),
		Status:      stringField(body, "status"),
		Priority:    stringField(body, "priority"),
		CreatedAt:   createdAt,
	}
	if due, ok := dateField(body, "dueDate"); ok {
		goal.DueDate = due
	}
	return goal
}

// NewGoals builds the handler for the goals collection.
func NewGoals(store Store[models.Goal]) *Resource[models.Goal] {
	return &Resource[models.Goal]{
		label:     "Goal",
		plural:    "goals",
		store:     store,
		rules:     goalRules,
		build:     goalFromBody,
		createdAt: func(g models.Goal) time.Time { return g.CreatedAt },
	}
}
