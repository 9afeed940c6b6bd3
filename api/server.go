// Package api serves a ledger over a JSON HTTP API.
package api

import (
	"net/http"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/forecast"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Server holds the handlers of the API.
type Server struct {
	store      *bussinbank.Store
	forecaster *forecast.Forecaster
	log        zerolog.Logger
}

// NewServer returns a Server on store.
func NewServer(store *bussinbank.Store, log zerolog.Logger) *Server {
	return &Server{store: store, forecaster: forecast.New(store), log: log}
}

// Router returns the http.Handler routing every endpoint.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(Recovery(s.log))
	r.Use(Logger(s.log))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", s.Health)
	r.Get("/metrics", s.Metrics)
	r.Get("/report.html", s.Report)
	r.Get("/spending", s.Spending)

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", s.ListAccounts)
		r.Post("/", s.OpenAccount)
		r.Get("/{id}", s.GetAccount)
	})
	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", s.ListTransactions)
		r.Post("/", s.AddTransaction)
	})
	r.Route("/goals", func(r chi.Router) {
		r.Get("/", s.ListGoals)
		r.Post("/", s.SetGoal)
		r.Get("/summary", s.GoalSummary)
	})
	r.Route("/forecast", func(r chi.Router) {
		r.Get("/balance", s.ForecastBalance)
		r.Get("/monthly", s.ForecastMonthly)
		r.Get("/goal", s.ForecastGoal)
		r.Get("/retire", s.ForecastRetire)
	})
	return r
}
