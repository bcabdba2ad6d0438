// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	repository "github.com/okian/depthchart/internal/adapters/repository"
	"github.com/okian/depthchart/internal/domain/model"
	"github.com/okian/depthchart/internal/domain/report"
	"github.com/okian/depthchart/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ReportDependencies
	LeaderboardDependencies
	RankDependencies
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	reportHandler      *ReportHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		reportHandler:      NewReportHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		rankHandler:        NewRankHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleGetReport, "report"))
	mux.HandleFunc("/depthchart", MetricsMiddleware(s.reportHandler.HandleGetDepthChart, "depthchart"))
	mux.HandleFunc("/correlation", MetricsMiddleware(s.reportHandler.HandleGetCorrelation, "correlation"))
	mux.HandleFunc("/fits", MetricsMiddleware(s.reportHandler.HandleGetFits, "fits"))
	mux.HandleFunc("/subsets/", MetricsMiddleware(s.reportHandler.HandleGetSubset, "subsets"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeLookupError maps a store error to 404 or 500.
func writeLookupError(w http.ResponseWriter, err error) {
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// parseRole reads a role path or query value such as "rb" or "WR".
func parseRole(op, raw string) (model.Role, error) {
	role, ok := model.ParseRole(raw)
	if !ok {
		return "", wrap(op, fmt.Errorf("%w: %q", ErrUnknownRole, raw))
	}
	return role, nil
}

// latest resolves the report a read request targets: the run named by
// ?run_id= or the latest one.
func latest(r *http.Request, deps ReportDependencies) (*report.Report, error) {
	if id := strings.TrimSpace(r.URL.Query().Get("run_id")); id != "" {
		return deps.Report(r.Context(), id)
	}
	return deps.Latest(r.Context())
}
