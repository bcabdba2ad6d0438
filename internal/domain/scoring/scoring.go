// Package scoring derives per-role fantasy metrics from season records.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/depthchart/internal/domain/model"
)

// Weight names accepted by WithWeightsFromConfig.
const (
	WeightPassingYD    = "passing_yd"
	WeightPassingTD    = "passing_td"
	WeightInterception = "interceptions"
	WeightRushingYD    = "rushing_yd"
	WeightRushingTD    = "rushing_td"
	WeightReceivingYD  = "receiving_yd"
	WeightReceivingTD  = "receiving_td"
	WeightReception    = "receptions"
	WeightFumbleLost   = "fumbles_lost"
)

// DefaultWeights is half-PPR scoring.
var DefaultWeights = map[string]float64{
	WeightPassingYD:    0.04,
	WeightPassingTD:    4,
	WeightInterception: -2,
	WeightRushingYD:    0.1,
	WeightRushingTD:    6,
	WeightReceivingYD:  0.1,
	WeightReceivingTD:  6,
	WeightReception:    0.5,
	WeightFumbleLost:   -2,
}

// WeightNames returns the accepted weight names, sorted.
func WeightNames() []string {
	names := make([]string, 0, len(DefaultWeights))
	for n := range DefaultWeights {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// UnknownWeights returns the names in weights that the Deriver ignores.
func UnknownWeights(weights map[string]float64) []string {
	var out []string
	for n := range weights {
		if _, ok := DefaultWeights[n]; !ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Deriver computes usage, fantasy points and touchdowns per game.
type Deriver struct {
	weights map[string]float64
	strict  bool
}

// NewDeriver creates a deriver with configuration options.
func NewDeriver(opts ...Option) *Deriver {
	d := &Deriver{weights: make(map[string]float64, len(DefaultWeights))}
	for n, w := range DefaultWeights {
		d.weights[n] = w
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Weight returns the weight in effect for name.
func (d *Deriver) Weight(name string) float64 { return d.weights[name] }

// FantasyPoints returns the season fantasy point total for rec at role.
func (d *Deriver) FantasyPoints(role model.Role, rec model.PlayerSeasonRecord) float64 {
	w := d.weights
	fumbles := float64(rec.FumblesLost) * w[WeightFumbleLost]
	rushing := float64(rec.RushingYD)*w[WeightRushingYD] + float64(rec.RushingTD)*w[WeightRushingTD]
	receiving := float64(rec.ReceivingYD)*w[WeightReceivingYD] +
		float64(rec.ReceivingTD)*w[WeightReceivingTD] +
		float64(rec.Receptions)*w[WeightReception]

	switch role {
	case model.RoleQB:
		passing := float64(rec.PassingYD)*w[WeightPassingYD] +
			float64(rec.PassingTD)*w[WeightPassingTD] +
			float64(rec.Interceptions)*w[WeightInterception]
		return passing + rushing + fumbles
	case model.RoleTE:
		return receiving + fumbles
	default:
		return receiving + rushing + fumbles
	}
}

// Derive computes the metrics role defines for rec.
func (d *Deriver) Derive(role model.Role, rec model.PlayerSeasonRecord) (model.Derived, error) {
	if rec.Games <= 0 {
		return model.Derived{}, fmt.Errorf("%w: %s (%s) has %d games", ErrDivisionUndefined, rec.Player, role, rec.Games)
	}
	g := float64(rec.Games)

	out := model.Derived{FantasyPointsPerGame: d.FantasyPoints(role, rec) / g}
	switch role {
	case model.RoleQB:
	case model.RoleTE:
		if d.strict {
			out.UsagePerGame = round2(float64(rec.RushingAttempt+rec.Targets) / g)
		} else {
			// Season total, not per game.
			out.UsagePerGame = float64(rec.Receptions)
		}
		out.TouchdownsPerGame = float64(rec.ReceivingTD) / g
	default:
		out.UsagePerGame = round2(float64(rec.RushingAttempt+rec.Targets) / g)
		out.TouchdownsPerGame = round2(float64(rec.RushingTD+rec.ReceivingTD) / g)
	}

	if d.strict {
		out.UsagePerGame = round2(out.UsagePerGame)
		out.FantasyPointsPerGame = round2(out.FantasyPointsPerGame)
		out.TouchdownsPerGame = round2(out.TouchdownsPerGame)
	}
	return out, nil
}

// DeriveSubset scores every record of one role into a new subset. The
// first failing record aborts the subset.
func (d *Deriver) DeriveSubset(role model.Role, recs []model.PlayerSeasonRecord) (model.PositionSubset, error) {
	out := model.PositionSubset{Role: role, Rows: make([]model.ScoredPlayer, 0, len(recs))}
	for _, rec := range recs {
		m, err := d.Derive(role, rec)
		if err != nil {
			return model.PositionSubset{}, err
		}
		out.Rows = append(out.Rows, model.ScoredPlayer{PlayerSeasonRecord: rec, Derived: m})
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
