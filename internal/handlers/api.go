package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/daybookhq/daybook-backend/internal/config"
	"github.com/daybookhq/daybook-backend/internal/models"
	"github.com/daybookhq/daybook-backend/internal/repository"
	"github.com/daybookhq/daybook-backend/internal/services"
)

// API bundles the resource handlers, the auth handlers and the session store
// the router needs.
type API struct {
	Entries  *Resource[models.Entry]
	Goals    *Resource[models.Goal]
	Comments *Resource[models.Comment]
	Users    *Resource[models.User]
	Auth     *Auth
	Sessions *services.SessionStore
}

// NewAPI wires each resource handler to its collection.
func NewAPI(cfg *config.Config, db *mongo.Database, sessions *services.SessionStore) *API {
	return &API{
		Entries:  NewEntries(repository.NewCollection[models.Entry](db, "entries")),
		Goals:    NewGoals(repository.NewCollection[models.Goal](db, "goals")),
		Comments: NewComments(repository.NewCollection[models.Comment](db, "comments")),
		Users:    NewUsers(repository.NewCollection[models.User](db, "users")),
		Auth:     NewAuth(cfg, sessions),
		Sessions: sessions,
	}
}
