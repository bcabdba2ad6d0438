// Package service runs the depth chart pipeline and serves its reports to
// the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/depthchart/internal/adapters/render"
	repository "github.com/okian/depthchart/internal/adapters/repository"
	"github.com/okian/depthchart/internal/adapters/tableio"
	"github.com/okian/depthchart/internal/domain/depth"
	"github.com/okian/depthchart/internal/domain/filter"
	"github.com/okian/depthchart/internal/domain/model"
	"github.com/okian/depthchart/internal/domain/position"
	"github.com/okian/depthchart/internal/domain/report"
	"github.com/okian/depthchart/internal/domain/schema"
	"github.com/okian/depthchart/internal/domain/scoring"
	"github.com/okian/depthchart/internal/domain/stats"
	"github.com/okian/depthchart/internal/domain/table"
	"github.com/okian/depthchart/internal/domain/types"
	"github.com/okian/depthchart/pkg/logger"
	"github.com/okian/depthchart/pkg/metrics"
)

// Source selects the subsets the depth chart is built from.
type Source string

// Depth chart sources.
const (
	SourceDerived     Source = "derived"
	SourceThresholded Source = "thresholded"
)

// Pipeline stage names, used in logs and metrics.
const (
	StageRead      = "read"
	StageMap       = "map"
	StageDecode    = "decode"
	StageFilter    = "filter"
	StageSplit     = "split"
	StageDerive    = "derive"
	StageThreshold = "threshold"
	StageDepth     = "depth_chart"
	StageCorrelate = "correlate"
	StageFit       = "fit"
	StagePublish   = "publish"
	StageExport    = "export"
	StageRender    = "render"
)

const reasonOtherPosition = "other_position"

// Service runs the pipeline and keeps the published reports.
type Service struct {
	mu sync.RWMutex

	// Pipeline stages
	rowFilter   *filter.RowFilter
	thresholds  *filter.Thresholds
	deriver     *scoring.Deriver
	policy      depth.Policy
	chartSource Source

	// Sinks
	store         repository.Store
	renderer      render.Renderer
	exporter      *tableio.Exporter
	exportFormats []string

	// State
	runs      int
	failures  int
	lastRunID string
	lastRunAt time.Time
	lastTook  time.Duration
	lastError string

	// Logging
	logger logger.Logger
}

// New constructs a Service with default stages: five-game floor, 2TM/3TM
// sentinels, default cutoffs and weights, error policy, derived source,
// in-memory store and no renderer or exporter.
func New(opts ...Option) *Service {
	s := &Service{
		rowFilter:   filter.NewRowFilter(),
		thresholds:  filter.NewThresholds(),
		deriver:     scoring.NewDeriver(),
		policy:      depth.PolicyError,
		chartSource: SourceDerived,
		renderer:    render.Nop{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.logger == nil {
		s.logger = logger.Named("pipeline")
	}
	return s
}

// RunFile reads the season table at path and runs the pipeline on it.
func (s *Service) RunFile(ctx context.Context, path string) (*report.Report, error) {
	var raw table.Table
	err := s.stage(ctx, StageRead, func() error {
		var err error
		raw, err = tableio.Read(ctx, path)
		return err
	})
	if err != nil {
		s.recordRun("", 0, err)
		return nil, err
	}
	return s.run(ctx, raw, path)
}

// Run runs the pipeline on a raw season table. The table is not modified.
func (s *Service) Run(ctx context.Context, raw table.Table) (*report.Report, error) {
	return s.run(ctx, raw, "memory")
}

func (s *Service) run(ctx context.Context, raw table.Table, source string) (*report.Report, error) {
	start := time.Now()
	rep, err := s.build(ctx, raw, source)
	if err == nil && s.exporter != nil && len(s.exportFormats) > 0 {
		err = s.stage(ctx, StageExport, func() error { return s.export(ctx, rep) })
	}
	if err == nil {
		err = s.stage(ctx, StageRender, func() error { return s.render(ctx, rep) })
	}
	// A report becomes Latest only once all its outputs are written.
	if err == nil {
		err = s.stage(ctx, StagePublish, func() error { return s.store.Put(ctx, rep) })
	}

	runID := ""
	if rep != nil {
		runID = rep.RunID
	}
	s.recordRun(runID, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "pipeline run complete",
		logger.String("runID", rep.RunID),
		logger.String("source", source),
		logger.Int("ingested", rep.Counts.Ingested),
		logger.Int("teams", len(rep.DepthChart.Teams)),
		logger.Int("fits", len(rep.Fits)),
		logger.Duration("took", time.Since(start)),
	)
	return rep, nil
}

// build runs every computing stage and returns the unpublished report.
func (s *Service) build(ctx context.Context, raw table.Table, source string) (*report.Report, error) {
	rep := &report.Report{
		RunID:       uuid.NewString(),
		Source:      source,
		CreatedAt:   time.Now().UTC(),
		Derived:     make(map[model.Role]model.PositionSubset, len(model.Roles)),
		Thresholded: make(map[model.Role]model.PositionSubset, len(model.Roles)),
		Counts: report.Counts{
			Derived:     make(map[string]int, len(model.Roles)),
			Thresholded: make(map[string]int, len(model.Roles)),
		},
	}

	var mapped table.Table
	if err := s.stage(ctx, StageMap, func() error {
		var err error
		mapped, err = schema.Map(raw)
		return err
	}); err != nil {
		return nil, err
	}

	var recs []model.PlayerSeasonRecord
	if err := s.stage(ctx, StageDecode, func() error {
		var err error
		recs, err = schema.Decode(mapped)
		return err
	}); err != nil {
		return nil, err
	}
	rep.Counts.Ingested = len(recs)
	metrics.RecordRowsIngested(len(recs))

	var kept []model.PlayerSeasonRecord
	if err := s.stage(ctx, StageFilter, func() error {
		kept, rep.Counts.Dropped = s.rowFilter.Apply(recs)
		for reason, n := range rep.Counts.Dropped {
			metrics.RecordRowsDropped(reason, n)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	var parts position.Partition
	if err := s.stage(ctx, StageSplit, func() error {
		parts = position.Split(kept)
		rep.Counts.Discarded = parts.Discarded
		metrics.RecordRowsDropped(reasonOtherPosition, parts.Discarded)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.stage(ctx, StageDerive, func() error {
		for _, role := range model.Roles {
			subset, err := s.deriver.DeriveSubset(role, parts.Subsets[role])
			if err != nil {
				return err
			}
			rep.Derived[role] = subset
			rep.Counts.Derived[string(role)] = subset.Len()
			metrics.UpdateSubsetRows(string(role), "derived", subset.Len())
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.stage(ctx, StageThreshold, func() error {
		for _, role := range model.Roles {
			subset := s.thresholds.Apply(rep.Derived[role])
			rep.Thresholded[role] = subset
			rep.Counts.Thresholded[string(role)] = subset.Len()
			metrics.UpdateSubsetRows(string(role), "thresholded", subset.Len())
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.stage(ctx, StageDepth, func() error {
		src := rep.Derived
		if s.chartSource == SourceThresholded {
			src = rep.Thresholded
		}
		chart, err := depth.Build(src, model.MetricFantasyPoints, s.policy)
		if err != nil {
			return err
		}
		rep.DepthChart = chart
		for j, label := range chart.Labels() {
			_, present := chart.Column(j)
			metrics.UpdateDepthChartTeams(label, countTrue(present))
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.stage(ctx, StageCorrelate, func() error {
		m, err := stats.Correlate(chartSeries(rep.DepthChart))
		rep.Correlation = m
		return err
	}); err != nil {
		return nil, err
	}

	if err := s.stage(ctx, StageFit, func() error {
		rep.Fits = s.fits(ctx, rep.Thresholded)
		return nil
	}); err != nil {
		return nil, err
	}

	return rep, nil
}

// scatterDef names one scatter of a thresholded subset.
type scatterDef struct {
	name  string
	title string
	role  model.Role
	x, y  model.Metric
}

var scatterDefs = []scatterDef{
	{name: "rb_usage_vs_fppg", title: "Running Back Usage vs Fantasy Points", role: model.RoleRB, x: model.MetricUsage, y: model.MetricFantasyPoints},
	{name: "rb_usage_vs_tdpg", title: "Running Back Usage vs Touchdowns Per Game", role: model.RoleRB, x: model.MetricUsage, y: model.MetricTouchdowns},
	{name: "wr_usage_vs_fppg", title: "Wide Receiver Usage vs Fantasy Points", role: model.RoleWR, x: model.MetricUsage, y: model.MetricFantasyPoints},
}

// fits computes the line behind each scatter. Degenerate fits are logged
// and left out; their scatter is drawn without a line.
func (s *Service) fits(ctx context.Context, subsets map[model.Role]model.PositionSubset) []stats.LinearFit {
	out := make([]stats.LinearFit, 0, len(scatterDefs))
	for _, def := range scatterDefs {
		x, y := metricSeries(subsets[def.role], def.x), metricSeries(subsets[def.role], def.y)
		fit, err := stats.FitLine(x, y)
		if err != nil {
			metrics.RecordStageError(StageFit, errorKind(err))
			s.logger.Warn(ctx, "skipping line fit",
				logger.String("plot", def.name),
				logger.Error(err),
			)
			continue
		}
		out = append(out, fit)
	}
	return out
}

func metricSeries(subset model.PositionSubset, m model.Metric) stats.Series {
	return stats.Series{Name: fmt.Sprintf("%s_%s", subset.Role, m), Values: subset.Values(m)}
}

func chartSeries(c depth.Chart) []stats.Series {
	labels := c.Labels()
	out := make([]stats.Series, len(labels))
	for j, l := range labels {
		values, present := c.Column(j)
		out[j] = stats.Series{Name: l, Values: values, Present: present}
	}
	return out
}

// stage times fn, logs its outcome and records stage metrics.
func (s *Service) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		metrics.RecordStageError(name, errorKind(err))
		return fmt.Errorf("%s: %w", name, err)
	}
	start := time.Now()
	err := fn()
	took := time.Since(start)
	metrics.RecordStageDuration(name, float64(took.Microseconds())/1000)

	if err != nil {
		metrics.RecordStageError(name, errorKind(err))
		s.logger.Error(ctx, "pipeline stage failed",
			logger.String("stage", name),
			logger.Error(err),
		)
		return fmt.Errorf("%s: %w", name, err)
	}
	s.logger.Debug(ctx, "pipeline stage done",
		logger.String("stage", name),
		logger.Duration("took", took),
	)
	return nil
}

func (s *Service) recordRun(runID string, took time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.RecordPipelineRun(status)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs++
	s.lastRunAt = time.Now()
	s.lastTook = took
	if err != nil {
		s.failures++
		s.lastError = err.Error()
		return
	}
	s.lastRunID = runID
	s.lastError = ""
}

// errorKind maps an error to a low-cardinality metrics label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, schema.ErrSchema):
		return "schema"
	case errors.Is(err, schema.ErrInvalidValue):
		return "invalid_value"
	case errors.Is(err, scoring.ErrDivisionUndefined):
		return "division_undefined"
	case errors.Is(err, depth.ErrEmptyGroup):
		return "empty_group"
	case errors.Is(err, stats.ErrDegenerateFit):
		return "degenerate_fit"
	case errors.Is(err, tableio.ErrUnsupportedFormat), errors.Is(err, tableio.ErrEmptyTable):
		return "format"
	default:
		return "other"
	}
}

func countTrue(v []bool) int {
	n := 0
	for _, b := range v {
		if b {
			n++
		}
	}
	return n
}

// Latest returns the most recently published report.
func (s *Service) Latest(ctx context.Context) (*report.Report, error) {
	return s.store.Latest(ctx)
}

// Report returns a published report by run id.
func (s *Service) Report(ctx context.Context, runID string) (*report.Report, error) {
	return s.store.Get(ctx, runID)
}

// Leaderboard returns the top-n players of role by fantasy points per game.
func (s *Service) Leaderboard(ctx context.Context, role model.Role, n int) ([]types.Entry, error) {
	return s.store.Leaderboard(ctx, role, n)
}

// Rank returns a player's leaderboard entry within role.
func (s *Service) Rank(ctx context.Context, role model.Role, player string) (types.Entry, error) {
	return s.store.Rank(ctx, role, player)
}

// GetStats returns run counters for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[string]interface{}{
		"runs":               s.runs,
		"failures":           s.failures,
		"reports":            s.store.Count(context.Background()),
		"short_group_policy": string(s.policy),
		"depth_chart_source": string(s.chartSource),
		"last_run_id":        s.lastRunID,
		"last_run_ms":        s.lastTook.Milliseconds(),
	}
	if !s.lastRunAt.IsZero() {
		out["last_run_at"] = s.lastRunAt.UTC().Format(time.RFC3339)
	}
	if s.lastError != "" {
		out["last_error"] = s.lastError
	}
	return out
}
