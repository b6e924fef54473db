// Package mockapi is a local stand-in for the hosted SwiftCare backend.
// It speaks the same HTTP contract the client consumes: cookie-based refresh,
// bearer-protected resources, Mongo-style documents with `_id` keys. It backs
// integration tests and offline development; it is not a deployable service.
package mockapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MubeenKhalid10/SwiftCare/pkg/config"
)

// Server bundles the fixture store, the token service and the HTTP routes.
type Server struct {
	cfg    config.MockConfig
	store  *fixtureStore
	tokens *tokenService
}

// NewServer creates a mock backend seeded with demo fixtures.
func NewServer(cfg config.MockConfig) *Server {
	return &Server{
		cfg:    cfg,
		store:  newFixtureStore(),
		tokens: newTokenService(cfg.JWTSecret, cfg.AccessExpiry, cfg.RefreshExpiry),
	}
}

// Router builds the chi router with the full route surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(Recoverer())
	r.Use(Logger())
	r.Use(CORS(s.cfg.AllowedOrigins))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/signup", s.handleSignup)
		r.Post("/google", s.handleGoogleAuth)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/logout", s.handleLogout)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Route("/doctors", func(r chi.Router) {
			r.Get("/", s.handleList(collectionDoctors))
			r.Post("/", s.handleCreate(collectionDoctors))
			r.Get("/{id}", s.handleGet(collectionDoctors))
			r.Put("/{id}", s.handleUpdate(collectionDoctors))
			r.Delete("/{id}", s.handleDelete(collectionDoctors))
		})
		r.Route("/patients", func(r chi.Router) {
			r.Get("/", s.handleList(collectionPatients))
			r.Post("/", s.handleCreate(collectionPatients))
			r.Get("/{id}", s.handleGet(collectionPatients))
			r.Put("/{id}", s.handleUpdate(collectionPatients))
			r.Delete("/{id}", s.handleDelete(collectionPatients))
		})
		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", s.handleList(collectionAppointments))
			r.Post("/", s.handleCreate(collectionAppointments))
			r.Get("/{id}", s.handleGet(collectionAppointments))
			r.Put("/{id}", s.handleUpdate(collectionAppointments))
			r.Delete("/{id}", s.handleDelete(collectionAppointments))
		})
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", s.handleList(collectionReviews))
			r.Post("/", s.handleCreate(collectionReviews))
			r.Get("/{id}", s.handleGet(collectionReviews))
			r.Delete("/{id}", s.handleDelete(collectionReviews))
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}
