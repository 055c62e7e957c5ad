package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/groups", func(r chi.Router) {
			r.Post("/", s.handleCreateGroup)
			r.Get("/", s.handleListGroups)
			r.Get("/{id}", s.handleGetGroup)
			r.Patch("/{id}", s.handleUpdateGroup)
			r.Delete("/{id}", s.handleDeleteGroup)
			r.Get("/{id}/stats", s.handleGroupStats)
			r.Get("/{id}/cards", s.handlePracticeCards)
			r.Post("/{id}/reset", s.handleResetProgress)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Post("/", s.handleCreateCard)
			r.Get("/{id}", s.handleGetCard)
			r.Patch("/{id}", s.handleUpdateCard)
			r.Delete("/{id}", s.handleDeleteCard)
			r.Post("/{id}/review", s.handleSubmitReview)
			r.Get("/{id}/stats", s.handleCardStats)
		})

		r.Get("/due", s.handleDueCards)
	})

	return r
}
