package handlers

import (
	"time"

	"github.com/daybookhq/daybook-backend/internal/models"
	"github.com/daybookhq/daybook-backend/internal/validation"
)

var entryRules = validation.Rules(
	validation.Field("userId").
		Required("userId is required").
		String("userId must be a string"),
	validation.Field("title").
		Required("Title is required").
		MinLength(3, "Title must be at least 3 characters long"),
	validation.Field("content").
		Required("Content is required").
		MinLength(5, "Content must be at least 5 characters long"),
	validation.Field("tags").
		Optional().
		Array("Tags must be an array"),
	validation.Field("mood").
		Optional().
		String("Mood must be a string"),
)

func entryFromBody(body map[string]interface{}, createdAt time.Time) models.Entry {
	return models.Entry{
		UserID:    stringField(body, "userId"),
		Title:     stringField(body, "title"),
		Content:   stringField(body, "content"),
		Tags:      stringSliceField(body, "tags"),
		Mood:      stringField(body, "mood"),
		CreatedAt: createdAt,
	}
}

// NewEntries builds the handler for the entries collection.
func NewEntries(store Store[models.Entry]) *Resource[models.Entry] {
	return &Resource[models.Entry]{
		label:      "Entry",
		plural:     "entries",
		store:      store,
		rules:      entryRules,
		build:      entryFromBody,
		createdAt:  func(e models.Entry) time.Time { return e.CreatedAt },
		idInCreate: true,
	}
}
