package service

import (
	"github.com/okian/depthchart/internal/adapters/render"
	repository "github.com/okian/depthchart/internal/adapters/repository"
	"github.com/okian/depthchart/internal/adapters/tableio"
	"github.com/okian/depthchart/internal/domain/depth"
	"github.com/okian/depthchart/internal/domain/filter"
	"github.com/okian/depthchart/internal/domain/scoring"
	"github.com/okian/depthchart/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRowFilter replaces the games-played and multi-team filter.
func WithRowFilter(f *filter.RowFilter) Option {
	return func(s *Service) {
		if f != nil {
			s.rowFilter = f
		}
	}
}

// WithThresholds replaces the per-role volume cutoffs.
func WithThresholds(t *filter.Thresholds) Option {
	return func(s *Service) {
		if t != nil {
			s.thresholds = t
		}
	}
}

// WithDeriver replaces the metric deriver.
func WithDeriver(d *scoring.Deriver) Option {
	return func(s *Service) {
		if d != nil {
			s.deriver = d
		}
	}
}

// WithShortGroupPolicy sets how teams with too few players are handled.
func WithShortGroupPolicy(p depth.Policy) Option {
	return func(s *Service) {
		if p != "" {
			s.policy = p
		}
	}
}

// WithDepthChartSource selects which subsets feed the depth chart.
func WithDepthChartSource(src Source) Option {
	return func(s *Service) {
		if src == SourceDerived || src == SourceThresholded {
			s.chartSource = src
		}
	}
}

// WithRenderer sets the plot sink.
func WithRenderer(r render.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithExporter enables table export in the given formats (csv, xlsx).
func WithExporter(e *tableio.Exporter, formats ...string) Option {
	return func(s *Service) {
		s.exporter = e
		s.exportFormats = append([]string(nil), formats...)
	}
}

// WithStore sets where finished reports are published.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}
