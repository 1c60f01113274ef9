// Package server mounts the API handlers behind the shared middleware stack.
package server

import (
	"net/http"

	"launchpad-api/internal/admins"
	"launchpad-api/internal/apperr"
	"launchpad-api/internal/auth"
	"launchpad-api/internal/branding"
	"launchpad-api/internal/designs"
	"launchpad-api/internal/fullprojects"
	"launchpad-api/internal/middleware"
	"launchpad-api/internal/testimonials"
	"launchpad-api/internal/transport"
	"launchpad-api/internal/videos"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const UploadsPrefix = "/uploads"

type Handlers struct {
	Admins       *admins.Handler
	Videos       *videos.Handler
	Branding     *branding.Handler
	FullProjects *fullprojects.Handler
	Designs      *designs.Handler
	Testimonials *testimonials.Handler
}

type Options struct {
	Log         *zap.Logger
	Tokens      *auth.Manager
	CORSOrigins []string
	// Uploads serves stored files under UploadsPrefix; nil when files live in
	// object storage.
	Uploads http.Handler
}

func NewRouter(opts Options, h Handlers) http.Handler {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.CORS(opts.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		transport.WriteError(w, apperr.NotFound("Resource not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		transport.WriteError(w, apperr.MethodNotAllowed("Method not allowed"))
	})

	r.Get("/health", Health)
	if opts.Uploads != nil {
		r.Handle(UploadsPrefix+"/*", opts.Uploads)
	}

	adminOnly := func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.Tokens))
		r.Use(middleware.RequireAdmin)
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", h.Admins.Login)

		api.Get("/videos", h.Videos.PublicList)
		api.Route("/admin/videos", func(admin chi.Router) {
			adminOnly(admin)
			admin.Get("/", h.Videos.AdminList)
			admin.Post("/", h.Videos.Create)
			admin.Get("/{id}", h.Videos.Get)
			admin.Patch("/{id}", h.Videos.Update)
			admin.Delete("/{id}", h.Videos.Delete)
		})

		api.Get("/branding", h.Branding.List)
		api.Get("/full-projects", h.FullProjects.List)
		api.Get("/design", h.Designs.List)
		api.Get("/testimonials", h.Testimonials.List)

		api.Group(func(protected chi.Router) {
			adminOnly(protected)
			protected.Post("/branding", h.Branding.Create)
			protected.Post("/full-projects", h.FullProjects.Create)
			protected.Post("/design", h.Designs.Create)
			protected.Post("/testimonials", h.Testimonials.Create)
		})
	})

	return r
}

func Health(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
