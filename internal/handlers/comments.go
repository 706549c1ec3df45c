package handlers

import (
	"time"

	"github.com/daybookhq/daybook-backend/internal/models"
	"github.com/daybookhq/daybook-backend/internal/validation"
)

// Comments carry no field rules: every submitted field is accepted as-is.
var commentRules = validation.Rules()

func commentFromBody(body map[string]interface{}, createdAt time.Time) models.Comment {
	return models.Comment{
		CommentID: stringField(body, "commentId"),
		UserID:    stringField(body, "userId"),
		Text:      stringField(body, "text"),
		CreatedAt: createdAt,
	}
}

// NewComments builds the handler for the comments collection.
func NewComments(store Store[models.Comment]) *Resource[models.Comment] {
	return &Resource[models.Comment]{
		label:      "Comment",
		plural:     "comments",
		store:      store,
		rules:      commentRules,
		build:      commentFromBody,
		createdAt:  func(c models.Comment) time.Time { return c.CreatedAt },
		idInCreate: true,
	}
}
