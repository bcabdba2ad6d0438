// Package report defines the immutable result of one pipeline run.
package report

import (
	"time"

	"github.com/okian/depthchart/internal/domain/depth"
	"github.com/okian/depthchart/internal/domain/model"
	"github.com/okian/depthchart/internal/domain/stats"
)

// Counts summarizes how many rows each stage kept.
type Counts struct {
	Ingested    int            `json:"ingested"`
	Dropped     map[string]int `json:"dropped"`
	Discarded   int            `json:"discarded"`
	Derived     map[string]int `json:"derived"`
	Thresholded map[string]int `json:"thresholded"`
}

// Report is the output of one run. It is never modified after it is
// published.
type Report struct {
	RunID     string    `json:"run_id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Counts    Counts    `json:"counts"`

	// Derived holds every role's scored subset before volume cutoffs.
	Derived map[model.Role]model.PositionSubset `json:"-"`
	// Thresholded holds the subsets after volume cutoffs.
	Thresholded map[model.Role]model.PositionSubset `json:"-"`

	DepthChart  depth.Chart             `json:"depth_chart"`
	Correlation stats.CorrelationMatrix `json:"correlation"`
	Fits        []stats.LinearFit       `json:"fits"`
}

// Subset returns the derived or thresholded subset for role.
func (r *Report) Subset(role model.Role, thresholded bool) (model.PositionSubset, bool) {
	src := r.Derived
	if thresholded {
		src = r.Thresholded
	}
	s, ok := src[role]
	return s, ok
}
