// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Analyzer
	StatsProvider
}

// Server wires HTTP routes for the detector API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	detectorHandler *DetectorHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
		detectorHandler: NewDetectorHandler(deps),
	}
}

// Register attaches all API routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/healthz", chain(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/stats", chain(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/emotionDetector", chain(s.detectorHandler.HandleDetect, "emotionDetector"))
}

func chain(h http.HandlerFunc, endpoint string) http.Handler {
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint))
}
