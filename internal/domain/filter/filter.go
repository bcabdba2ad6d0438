// Package filter removes rows that should not reach scoring: short seasons,
// combined multi-team rows, and low-volume players.
package filter

import (
	"github.com/okian/depthchart/internal/domain/model"
)

// Default row filter settings.
const (
	DefaultMinGames = 5
)

// DefaultSentinels are the team values of a traded player's combined row.
var DefaultSentinels = []string{"2TM", "3TM"}

// Drop reasons reported by RowFilter.Apply.
const (
	ReasonMinGames  = "min_games"
	ReasonMultiTeam = "multi_team"
)

// RowFilter drops short seasons and multi-team rows.
type RowFilter struct {
	minGames  int
	sentinels map[string]struct{}
}

// NewRowFilter creates a row filter with configuration options.
func NewRowFilter(opts ...Option) *RowFilter {
	f := &RowFilter{minGames: DefaultMinGames}
	WithSentinels(DefaultSentinels...)(f)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Apply returns the records that pass, in input order, and the number
// dropped per reason. The input slice is not modified.
func (f *RowFilter) Apply(recs []model.PlayerSeasonRecord) ([]model.PlayerSeasonRecord, map[string]int) {
	dropped := map[string]int{ReasonMinGames: 0, ReasonMultiTeam: 0}
	out := make([]model.PlayerSeasonRecord, 0, len(recs))
	for _, r := range recs {
		if r.Games < f.minGames {
			dropped[ReasonMinGames]++
			continue
		}
		if _, ok := f.sentinels[r.Team]; ok {
			dropped[ReasonMultiTeam]++
			continue
		}
		out = append(out, r)
	}
	return out, dropped
}
