// Package model contains domain models passed between pipeline stages.
package model

// Stats holds a player's raw season counting stats under semantic names.
// Rates (YardsPerRush, YardsPerReception) are carried through as read.
type Stats struct {
	PassingYD         int
	PassingAttempt    int
	PassingTD         int
	Interceptions     int
	RushingYD         int
	RushingAttempt    int
	YardsPerRush      float64
	RushingTD         int
	ReceivingYD       int
	Targets           int
	Receptions        int
	YardsPerReception float64
	ReceivingTD       int
	FumblesLost       int
}

// PlayerSeasonRecord is one player-season row.
type PlayerSeasonRecord struct {
	Player   string
	Team     string
	Position string // raw FantPos value; may be outside the four roles
	Age      int
	Games    int
	Stats
}

// Derived holds the per-role metrics computed from a record.
// Fields a role does not define stay zero; see Role.HasMetric.
type Derived struct {
	UsagePerGame         float64
	FantasyPointsPerGame float64
	TouchdownsPerGame    float64
}

// ScoredPlayer is a record decorated with its derived metrics.
type ScoredPlayer struct {
	PlayerSeasonRecord
	Derived
}

// Value returns the player's value for metric m.
func (p ScoredPlayer) Value(m Metric) float64 {
	switch m {
	case MetricUsage:
		return p.UsagePerGame
	case MetricTouchdowns:
		return p.TouchdownsPerGame
	default:
		return p.FantasyPointsPerGame
	}
}

// PositionSubset is the ordered set of players of one role.
type PositionSubset struct {
	Role Role
	Rows []ScoredPlayer
}

// Len returns the number of rows.
func (s PositionSubset) Len() int { return len(s.Rows) }

// Clone returns a subset that shares no backing array with s.
func (s PositionSubset) Clone() PositionSubset {
	rows := make([]ScoredPlayer, len(s.Rows))
	copy(rows, s.Rows)
	return PositionSubset{Role: s.Role, Rows: rows}
}

// Values returns metric m for every row, in row order.
func (s PositionSubset) Values(m Metric) []float64 {
	out := make([]float64, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = r.Value(m)
	}
	return out
}

// Players returns the player names in row order.
func (s PositionSubset) Players() []string {
	out := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		out[i] = r.Player
	}
	return out
}
