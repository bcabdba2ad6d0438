package filter

import "github.com/okian/depthchart/internal/domain/model"

// DefaultCutoffs are the exclusive volume cutoffs per role.
var DefaultCutoffs = map[model.Role]int{
	model.RoleQB: 20,
	model.RoleRB: 20,
	model.RoleWR: 20,
	model.RoleTE: 10,
}

// Thresholds keeps players whose role volume stat is strictly above the
// role's cutoff. QB uses PassingAttempt, RB RushingAttempt, WR and TE
// Receptions.
type Thresholds struct {
	cutoffs map[model.Role]int
}

// NewThresholds creates a threshold filter with configuration options.
func NewThresholds(opts ...CutoffOption) *Thresholds {
	t := &Thresholds{cutoffs: make(map[model.Role]int, len(DefaultCutoffs))}
	for r, v := range DefaultCutoffs {
		t.cutoffs[r] = v
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Cutoff returns the cutoff for role r.
func (t *Thresholds) Cutoff(r model.Role) int { return t.cutoffs[r] }

// Apply returns a new subset holding the rows above the cutoff.
func (t *Thresholds) Apply(s model.PositionSubset) model.PositionSubset {
	cut, ok := t.cutoffs[s.Role]
	out := model.PositionSubset{Role: s.Role, Rows: make([]model.ScoredPlayer, 0, len(s.Rows))}
	for _, p := range s.Rows {
		if !ok || Volume(s.Role, p.PlayerSeasonRecord) > cut {
			out.Rows = append(out.Rows, p)
		}
	}
	return out
}

// Volume returns the stat the role's cutoff applies to.
func Volume(r model.Role, rec model.PlayerSeasonRecord) int {
	switch r {
	case model.RoleQB:
		return rec.PassingAttempt
	case model.RoleRB:
		return rec.RushingAttempt
	default:
		return rec.Receptions
	}
}
