package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/serenify-journal/internal/handlers"
)

// Deps carries what the route table needs besides the handler.
type Deps struct {
	Journal *handlers.JournalHandler
	// Auth resolves the bearer session; required on every /api/journal route.
	Auth func(http.Handler) http.Handler
	// AnalyzeLimit throttles the analyze endpoint. Optional.
	AnalyzeLimit func(http.Handler) http.Handler
}

func SetupRoutes(r chi.Router, d Deps) {
	r.Get("/health", handlers.Health)

	r.Route("/api/journal", func(r chi.Router) {
		r.Use(d.Auth)

		r.Post("/", d.Journal.Create)
		r.Get("/", d.Journal.List)
		r.Get("/stats", d.Journal.Stats)
		r.Put("/{id}", d.Journal.Update)
		r.Delete("/{id}", d.Journal.Delete)

		r.Group(func(r chi.Router) {
			if d.AnalyzeLimit != nil {
				r.Use(d.AnalyzeLimit)
			}
			r.Post("/analyze", d.Journal.Analyze)
		})
	})
}
