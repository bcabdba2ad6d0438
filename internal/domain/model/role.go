package model

import (
	"fmt"
	"strings"
)

// Role is a fantasy position.
type Role string

// Fantasy roles handled by the pipeline.
const (
	RoleQB Role = "QB"
	RoleRB Role = "RB"
	RoleWR Role = "WR"
	RoleTE Role = "TE"
)

// Roles lists the handled roles in reporting order.
var Roles = []Role{RoleQB, RoleRB, RoleWR, RoleTE}

// ParseRole maps a FantPos value to a Role. Unknown values report false.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleQB, RoleRB, RoleWR, RoleTE:
		return r, true
	default:
		return "", false
	}
}

// Metric names a derived field.
type Metric string

// Derived metrics.
const (
	MetricUsage         Metric = "usage_per_game"
	MetricFantasyPoints Metric = "fantasy_points_per_game"
	MetricTouchdowns    Metric = "touchdowns_per_game"
)

// HasMetric reports whether the role defines metric m.
// Quarterbacks are only scored on fantasy points.
func (r Role) HasMetric(m Metric) bool {
	if m == MetricFantasyPoints {
		return true
	}
	return r != RoleQB
}

// Metrics returns the metrics defined for the role.
func (r Role) Metrics() []Metric {
	if r == RoleQB {
		return []Metric{MetricFantasyPoints}
	}
	return []Metric{MetricUsage, MetricFantasyPoints, MetricTouchdowns}
}

// Slot is a depth chart position: the Rank-th best player at Role on a team.
type Slot struct {
	Role Role
	Rank int
}

// String renders the slot label, e.g. "RB2".
func (s Slot) String() string {
	return fmt.Sprintf("%s%d", s.Role, s.Rank)
}

// DepthChartSlots are the columns of the depth chart, in order.
var DepthChartSlots = []Slot{
	{Role: RoleQB, Rank: 1},
	{Role: RoleRB, Rank: 1},
	{Role: RoleRB, Rank: 2},
	{Role: RoleWR, Rank: 1},
	{Role: RoleWR, Rank: 2},
	{Role: RoleWR, Rank: 3},
	{Role: RoleTE, Rank: 1},
}

// TeamDepthEntry is one team's value for one slot.
type TeamDepthEntry struct {
	Team   string
	Slot   Slot
	Player string
	Score  float64
}
