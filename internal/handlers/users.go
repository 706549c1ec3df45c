package handlers

import (
	"time"

	"github.com/daybookhq/daybook-backend/internal/models"
	"github.com/daybookhq/daybook-backend/internal/validation"
)

var userRules = validation.Rules(
	validation.Field("name").
		Required("Name is required"),
	validation.Field("email").
		Email("Valid email is required"),
	validation.Field("oauthId").
		Required("OAuth ID is required"),
	validation.Field("role").
		OneOf([]string{models.RoleUser, models.RoleAdmin}, `Role must be either "user" or "admin"`),
	validation.Field("createdAt").
		Optional().
		ISO8601("createdAt must be a valid date"),
	validation.Field("profilePicture").
		Optional().
		URL("Profile picture must be a valid URL"),
)

// userFromBody prefers a body-supplied createdAt over the fallback, which is
// now() on create and the stored creation time on update.
func userFromBody(body map[string]interface{}, createdAt time.Time) models.User {
	user := models.User{
		Name:           stringField(body, "name"),
		Email:          stringField(body, "email"),
		OAuthID:        stringField(body, "oauthId"),
		Role:           stringField(body, "role"),
		ProfilePicture: stringField(body, "profilePicture"),
		CreatedAt:      createdAt,
	}
	if t, ok := dateField(body, "createdAt"); ok {
		user.CreatedAt = t
	}
	return user
}

// NewUsers builds the handler for the users collection.
func NewUsers(store Store[models.User]) *Resource[models.User] {
	return &Resource[models.User]{
		label:     "User",
		plural:    "users",
		store:     store,
		rules:     userRules,
		build:     userFromBody,
		createdAt: func(u models.User) time.Time { return u.CreatedAt },
	}
}
