package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/daybookhq/daybook-backend/internal/handlers"
	"github.com/daybookhq/daybook-backend/internal/middleware"
)

// SetupRoutes binds every resource to its verb+path table. Reads are open;
// mutations go through the access gate first.
func SetupRoutes(r *chi.Mux, api *handlers.API) {
	requireAuth := middleware.RequireAuth(api.Sessions)

	// Auth routes
	r.Get("/", api.Auth.Root)
	r.Get("/github/login", api.Auth.Login)
	r.Get("/github/callback", api.Auth.Callback)
	r.Get("/logout", api.Auth.Logout)

	mount(r, "/entries", api.Entries, requireAuth)
	mount(r, "/goals", api.Goals, requireAuth)
	mount(r, "/comments", api.Comments, requireAuth)
	mount(r, "/users", api.Users, requireAuth)
}

func mount[T any](r *chi.Mux, path string, rs *handlers.Resource[T], requireAuth func(http.Handler) http.Handler) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", rs.List)
		r.Get("/{id}", rs.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", rs.Create)
			r.Put("/{id}", rs.Update)
			r.Delete("/{id}", rs.Delete)
		})
	})
}
