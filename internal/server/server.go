// Package server assembles the chi router: global middleware, the JSON API
// and the operational endpoints.
package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/auth"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/handlers"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/middleware"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/observability"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/storage"
)

type Deps struct {
	Store    db.Store
	Sessions sessions.Store
	Tokens   *auth.Tokens
	Blob     storage.Blob
	Metrics  *observability.Metrics

	// UploadDir is served under UploadPath when uploads live on local disk.
	UploadDir string
	// UploadPath is the URL path local upload links point at. Defaults to /uploads.
	UploadPath     string
	LoginRateLimit int
	// TrustProxy enables chi's RealIP. Without a proxy rewriting the
	// forwarding headers, clients could pick their own address and dodge
	// the login rate limit.
	TrustProxy bool
	// RequestLogging toggles chi's access log; tests turn it off.
	RequestLogging bool
}

// New returns the API handler together with the handler set so callers can
// adjust its clock.
func New(d Deps) (http.Handler, *handlers.Handler) {
	h := handlers.New(d.Store, d.Sessions, d.Tokens, d.Blob, d.Metrics)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	if d.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	if d.RequestLogging {
		r.Use(chimiddleware.Logger)
	}
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", h.Healthz)
	r.Handle("/metrics", d.Metrics.Handler())
	if d.UploadDir != "" {
		prefix := strings.TrimRight(d.UploadPath, "/")
		if prefix == "" {
			prefix = "/uploads"
		}
		r.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(d.UploadDir))))
	}

	limit := middleware.RateLimit(d.LoginRateLimit)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(d.Store, d.Sessions, d.Tokens))

		r.Route("/auth", func(r chi.Router) {
			r.With(limit).Post("/register/", h.Register)
			r.With(limit).Post("/login/", h.Login)
			r.Post("/logout/", h.Logout)
			r.With(middleware.RequireAuth).Get("/profile/", h.Profile)
			r.With(middleware.RequireAuth).Patch("/profile/", h.UpdateProfile)
		})

		r.Route("/awareness/posts", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.Get("/{id}/", h.GetPost)
			r.Get("/{id}/comments/", h.ListComments)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.CreatePost)
				r.Post("/{id}/comments/", h.CreateComment)
				r.Post("/{id}/like/", h.ToggleLike)
			})
		})

		r.Route("/protests", func(r chi.Router) {
			r.Get("/", h.ListProtests)
			r.Get("/{id}/", h.GetProtest)
			r.Get("/{id}/updates/", h.ListProtestUpdates)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", h.CreateProtest)
				r.Post("/{id}/support/", h.ToggleSupport)
				r.Post("/{id}/updates/", h.CreateProtestUpdate)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Get("/{id}/status/", h.ProtestStatusHistory)
				r.Patch("/{id}/status/", h.SetProtestStatus)
			})
		})

		r.With(middleware.RequireAuth).Post("/uploads/", h.Upload)
	})

	return r, h
}
