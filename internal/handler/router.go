package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/folio/folio-go/internal/middleware"
)

// Handlers bundles everything the router serves.
type Handlers struct {
	Auth    *AuthHandler
	Project *ProjectHandler
	Contact *ContactHandler
}

// NewRouter wires the API routes and the middleware chain.
func NewRouter(h Handlers, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CORS(corsOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/user-auth", h.Auth.HandleUserAuth)
		r.Post("/admin-auth", h.Auth.HandleAdminAuth)

		r.Get("/projects", h.Project.HandleList)
		r.Post("/projects", h.Project.HandleCreate)
		r.Put("/projects", h.Project.HandleUpdate)
		r.Get("/projects/sections", h.Project.HandleSections)
		r.Get("/projects/{id}", h.Project.HandleGet)

		r.Post("/contact", h.Contact.HandleSubmit)
		r.Get("/site", h.Contact.HandleSite)
	})

	return r
}
