// Package server exposes the widgets over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"league_results_renderer/internal/logging"
	"league_results_renderer/internal/metrics"
	"league_results_renderer/internal/widgets"
)

// DataSource provides the league data behind the widgets.
type DataSource interface {
	Results(ctx context.Context, league, eventID string) ([]widgets.ResultTab, error)
	Standings(ctx context.Context, league, eventID string) ([]widgets.StandingTab, error)
	Schedule(ctx context.Context, league, seasonID string) ([]widgets.Event, error)
}

// Server renders widgets for incoming requests.
type Server struct {
	data    DataSource
	builder widgets.Builder
	metrics *metrics.Metrics
	log     *logrus.Entry
}

// New creates a Server. m may be nil.
func New(data DataSource, builder widgets.Builder, m *metrics.Metrics, log *logrus.Entry) *Server {
	return &Server{
		data:    data,
		builder: builder,
		metrics: m,
		log:     log,
	}
}

// Routes returns the router with all routes registered.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(logging.Middleware(s.log))

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/{league}/results/{event}", s.handleResults).Methods(http.MethodGet)
	r.HandleFunc("/{league}/standings/{event}", s.handleStandings).Methods(http.MethodGet)
	r.HandleFunc("/{league}/schedule/{season}", s.handleSchedule).Methods(http.MethodGet)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
