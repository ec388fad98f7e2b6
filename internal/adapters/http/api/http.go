// Package api wires the RPC envelope onto HTTP and registers routes.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/valeko/scoreline/internal/domain/rpc"
	"github.com/valeko/scoreline/pkg/logger"
	"github.com/valeko/scoreline/pkg/metrics"
)

// Dependencies bundles what the HTTP handlers need from the service layer.
type Dependencies interface {
	// Handle dispatches one decoded envelope body.
	Handle(ctx context.Context, body map[string]any) (any, *rpc.Error)

	// GetStats exposes service counters for the stats endpoint.
	GetStats() map[string]any
}

// Pinger is an optional store liveness probe for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires HTTP routes for the RPC API.
type Server struct {
	methodHandler *MethodHandler
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
}

// NewServer creates the API server. pinger may be nil when the backing
// store has no liveness probe.
func NewServer(deps Dependencies, pinger Pinger, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		methodHandler: NewMethodHandler(deps, log.Named("method")),
		healthHandler: NewHealthHandler(pinger),
		statsHandler:  NewStatsHandler(deps),
	}
}

// Register attaches all routes to mux. Anything outside the known paths
// gets the envelope's not-found shape.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/method", RequestID(Metrics(s.methodHandler.HandleMethod, "method")))
	mux.HandleFunc("/healthz", Metrics(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", Metrics(s.statsHandler.HandleStats, "stats"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/", RequestID(Metrics(handleUnknownPath, "unknown")))
}

func handleUnknownPath(w http.ResponseWriter, _ *http.Request) {
	writeRPCError(w, rpc.StatusNotFound, "")
}

// successEnvelope is the wire shape for result codes.
type successEnvelope struct {
	Response any `json:"response"`
	Code     int `json:"code"`
}

// errorEnvelope is the wire shape for failure codes.
type errorEnvelope struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeResult writes the success envelope; the HTTP status mirrors the
// envelope code.
func writeResult(w http.ResponseWriter, result any) {
	writeJSON(w, rpc.StatusOK, successEnvelope{Response: result, Code: rpc.StatusOK})
}

// writeRPCError writes the error envelope, substituting the code's default
// text when the message is empty.
func writeRPCError(w http.ResponseWriter, code int, message string) {
	if message == "" {
		message = rpc.StatusText(code)
	}
	writeJSON(w, code, errorEnvelope{Error: message, Code: code})
}
