package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/depthchart/internal/domain/report"
)

// ReportDependencies defines the interface for report reads.
type ReportDependencies interface {
	Latest(ctx context.Context) (*report.Report, error)
	Report(ctx context.Context, runID string) (*report.Report, error)
}

// ReportHandler serves the published report and its parts.
type ReportHandler struct {
	deps ReportDependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// subsetResponse is the body of GET /subsets/{role}.
type subsetResponse struct {
	RunID       string              `json:"run_id"`
	Role        string              `json:"role"`
	Thresholded bool                `json:"thresholded"`
	Players     []report.PlayerView `json:"players"`
}

// HandleGetReport handles GET /report[?run_id=] requests.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rep *report.Report) any { return rep })
}

// HandleGetDepthChart handles GET /depthchart requests.
func (h *ReportHandler) HandleGetDepthChart(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rep *report.Report) any { return rep.DepthChart })
}

// HandleGetCorrelation handles GET /correlation requests.
func (h *ReportHandler) HandleGetCorrelation(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rep *report.Report) any { return rep.Correlation })
}

// HandleGetFits handles GET /fits requests.
func (h *ReportHandler) HandleGetFits(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(rep *report.Report) any { return rep.Fits })
}

// HandleGetSubset handles GET /subsets/{role}?thresholded=true requests.
func (h *ReportHandler) HandleGetSubset(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_subset"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/subsets/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", wrap(op, ErrBadRequest))
		return
	}
	role, err := parseRole(op, path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	thresholded := false
	if v := r.URL.Query().Get("thresholded"); v != "" {
		if thresholded, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", wrap(op, ErrBadRequest))
			return
		}
	}

	rep, err := latest(r, h.deps)
	if err != nil {
		writeLookupError(w, wrap(op, err))
		return
	}
	subset, _ := rep.Subset(role, thresholded)
	writeJSON(w, http.StatusOK, subsetResponse{
		RunID:       rep.RunID,
		Role:        string(role),
		Thresholded: thresholded,
		Players:     report.Players(subset),
	})
}

func (h *ReportHandler) serve(w http.ResponseWriter, r *http.Request, part func(*report.Report) any) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rep, err := latest(r, h.deps)
	if err != nil {
		writeLookupError(w, wrap("api.get_report", err))
		return
	}
	writeJSON(w, http.StatusOK, part(rep))
}
