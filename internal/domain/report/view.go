package report

import (
	"strconv"

	"github.com/okian/depthchart/internal/domain/model"
	"github.com/okian/depthchart/internal/domain/table"
)

// PlayerView is the JSON shape of one scored player.
type PlayerView struct {
	Player               string   `json:"player"`
	Team                 string   `json:"team"`
	Age                  int      `json:"age"`
	Games                int      `json:"games"`
	UsagePerGame         *float64 `json:"usage_per_game,omitempty"`
	FantasyPointsPerGame float64  `json:"fantasy_points_per_game"`
	TouchdownsPerGame    *float64 `json:"touchdowns_per_game,omitempty"`
}

// Players converts a subset into its JSON rows. Metrics the role does
// not define are omitted.
func Players(s model.PositionSubset) []PlayerView {
	out := make([]PlayerView, len(s.Rows))
	for i, p := range s.Rows {
		v := PlayerView{
			Player:               p.Player,
			Team:                 p.Team,
			Age:                  p.Age,
			Games:                p.Games,
			FantasyPointsPerGame: p.FantasyPointsPerGame,
		}
		if s.Role.HasMetric(model.MetricUsage) {
			u, td := p.UsagePerGame, p.TouchdownsPerGame
			v.UsagePerGame, v.TouchdownsPerGame = &u, &td
		}
		out[i] = v
	}
	return out
}

// SubsetTable renders a subset with its role's projected columns and
// derived metrics, for export.
func SubsetTable(s model.PositionSubset) table.Table {
	cols := []string{"Player", "Tm", "Age", "G", "FL"}
	switch s.Role {
	case model.RoleQB:
		cols = append(cols, "PassingYD", "PassingAttempt", "PassingTD", "Int", "RushingYD", "RushingAttempt", "RushingTD")
	case model.RoleTE:
		cols = append(cols, "ReceivingYD", "Targets", "Receptions", "Y/R", "ReceivingTD")
	default:
		cols = append(cols, "RushingYD", "RushingAttempt", "Y/A", "RushingTD", "ReceivingYD", "Targets", "Receptions", "Y/R", "ReceivingTD")
	}
	for _, m := range s.Role.Metrics() {
		cols = append(cols, string(m))
	}

	rows := make([][]string, len(s.Rows))
	for i, p := range s.Rows {
		row := []string{p.Player, p.Team, itoa(p.Age), itoa(p.Games), itoa(p.FumblesLost)}
		switch s.Role {
		case model.RoleQB:
			row = append(row, itoa(p.PassingYD), itoa(p.PassingAttempt), itoa(p.PassingTD), itoa(p.Interceptions),
				itoa(p.RushingYD), itoa(p.RushingAttempt), itoa(p.RushingTD))
		case model.RoleTE:
			row = append(row, itoa(p.ReceivingYD), itoa(p.Targets), itoa(p.Receptions), ftoa(p.YardsPerReception), itoa(p.ReceivingTD))
		default:
			row = append(row, itoa(p.RushingYD), itoa(p.RushingAttempt), ftoa(p.YardsPerRush), itoa(p.RushingTD),
				itoa(p.ReceivingYD), itoa(p.Targets), itoa(p.Receptions), ftoa(p.YardsPerReception), itoa(p.ReceivingTD))
		}
		for _, m := range s.Role.Metrics() {
			row = append(row, ftoa(p.Value(m)))
		}
		rows[i] = row
	}
	return table.Table{Columns: cols, Rows: rows}
}

// FitsTable renders line fits for export.
func (r *Report) FitsTable() table.Table {
	rows := make([][]string, len(r.Fits))
	for i, f := range r.Fits {
		rows[i] = []string{f.X, f.Y, ftoa(f.Slope), ftoa(f.Intercept), itoa(f.N)}
	}
	return table.Table{Columns: []string{"x", "y", "slope", "intercept", "n"}, Rows: rows}
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
