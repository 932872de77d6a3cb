package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/wheresmygrants/grantvotes/internal/core/ports"
)

func NewHandler(voteHandler *VoteHandler, statsHandler *StatsHandler, limiter ports.RateLimiter, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	r.With(RateLimit(limiter)).Post("/vote", voteHandler.Cast)
	r.Get("/vote/{grantID}/{researcherID}", voteHandler.Get)
	r.Delete("/vote/{grantID}/{researcherID}", voteHandler.Delete)

	r.Route("/votes", func(r chi.Router) {
		r.Get("/researcher/{researcherID}", voteHandler.ByResearcher)
		r.Get("/{grantID}", statsHandler.Totals)
		r.Get("/{grantID}/ratio", statsHandler.Ratio)
		r.Get("/{grantID}/trend", statsHandler.Trend)
	})

	r.Get("/grants/top", statsHandler.Top)
	r.Get("/researchers/{researcherID}/summary", statsHandler.ResearcherSummary)

	r.Route("/export", func(r chi.Router) {
		r.Get("/json", statsHandler.ExportJSON)
		r.Get("/csv", statsHandler.ExportCSV)
	})

	r.Get("/health", statsHandler.Health)

	return r
}
