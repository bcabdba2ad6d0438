package filter

import "github.com/okian/depthchart/internal/domain/model"

// Option applies a configuration option to a RowFilter.
type Option func(*RowFilter)

// WithMinGames sets the games-played floor. Negative values are ignored.
func WithMinGames(n int) Option {
	return func(f *RowFilter) {
		if n >= 0 {
			f.minGames = n
		}
	}
}

// WithSentinels replaces the multi-team team values.
func WithSentinels(teams ...string) Option {
	return func(f *RowFilter) {
		f.sentinels = make(map[string]struct{}, len(teams))
		for _, t := range teams {
			f.sentinels[t] = struct{}{}
		}
	}
}

// CutoffOption applies a configuration option to a Thresholds set.
type CutoffOption func(*Thresholds)

// WithCutoffs overrides cutoffs for the given roles; other roles keep
// their defaults.
func WithCutoffs(cutoffs map[model.Role]int) CutoffOption {
	return func(t *Thresholds) {
		for r, v := range cutoffs {
			if v >= 0 {
				t.cutoffs[r] = v
			}
		}
	}
}
