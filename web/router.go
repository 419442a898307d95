/* router.go
 * Contains the chi router with its middleware stack and route table
 * Authors: Zachary Bower
 */

package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Router builds the HTTP handler of the server. Requests are logged through logger
func (s *Server) Router(logger zerolog.Logger, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.RequestIDHandler("req_id", "Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.healthz)

	r.Route("/tournaments", func(r chi.Router) {
		r.Use(s.Authenticate)

		// Any authenticated user
		r.Get("/", s.listTournaments)
		r.Get("/{id}", s.getTournament)
		r.With(s.LimitJoins).Post("/{id}/join", s.joinTournament)

		r.Route("/daily", func(r chi.Router) {
			r.Get("/", s.listDaily)
			r.Get("/results", s.dailyResults)
			r.With(s.LimitJoins).Post("/{slug}/join", s.joinDaily)
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin)

			r.Post("/", s.createTournament)
			r.Post("/{id}/participants", s.addParticipants)
			r.Post("/{id}/start", s.startTournament)
			r.Post("/{id}/rounds/{round}/matches/{match}", s.reportMatch)
			r.Post("/{id}/rounds/{round}/advance", s.advanceRound)
		})
	})

	return r
}
