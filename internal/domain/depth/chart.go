package depth

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/okian/depthchart/internal/domain/model"
	"github.com/okian/depthchart/internal/domain/table"
)

// Cell is one team's value at one slot. Present is false when the team
// has no player for the slot.
type Cell struct {
	Player  string
	Score   float64
	Present bool
}

// Chart is the depth chart: one row per team, one column per slot.
type Chart struct {
	Metric model.Metric
	Slots  []model.Slot
	Teams  []string
	Cells  [][]Cell // [team][slot]
}

// Build aggregates every slot of model.DepthChartSlots by metric and joins
// the results by team. Under PolicyError, a team that appears in any slot
// but has no entry in another fails with ErrEmptyGroup.
func Build(subsets map[model.Role]model.PositionSubset, metric model.Metric, policy Policy) (Chart, error) {
	return BuildSlots(subsets, model.DepthChartSlots, metric, policy)
}

// BuildSlots is Build over an explicit slot list.
func BuildSlots(subsets map[model.Role]model.PositionSubset, slots []model.Slot, metric model.Metric, policy Policy) (Chart, error) {
	bySlot := make([]map[string]model.TeamDepthEntry, len(slots))
	universe := make(map[string]struct{})
	for j, s := range slots {
		subset, ok := subsets[s.Role]
		if !ok {
			subset = model.PositionSubset{Role: s.Role}
		}
		entries, err := Aggregate(subset, metric, s.Rank, policy)
		if err != nil {
			return Chart{}, err
		}
		bySlot[j] = make(map[string]model.TeamDepthEntry, len(entries))
		for _, e := range entries {
			bySlot[j][e.Team] = e
			universe[e.Team] = struct{}{}
		}
	}

	teams := make([]string, 0, len(universe))
	for t := range universe {
		teams = append(teams, t)
	}
	sort.Strings(teams)

	c := Chart{
		Metric: metric,
		Slots:  append([]model.Slot(nil), slots...),
		Teams:  teams,
		Cells:  make([][]Cell, len(teams)),
	}
	for i, team := range teams {
		row := make([]Cell, len(slots))
		for j, s := range slots {
			e, ok := bySlot[j][team]
			if !ok {
				if policy == PolicyError {
					return Chart{}, fmt.Errorf("team %s slot %s: %w: no %s players", team, s, ErrEmptyGroup, s.Role)
				}
				continue
			}
			row[j] = Cell{Player: e.Player, Score: e.Score, Present: true}
		}
		c.Cells[i] = row
	}
	return c, nil
}

// Labels returns the slot labels in column order.
func (c Chart) Labels() []string {
	out := make([]string, len(c.Slots))
	for j, s := range c.Slots {
		out[j] = s.String()
	}
	return out
}

// Column returns slot j's scores and which of them are present.
func (c Chart) Column(j int) (values []float64, present []bool) {
	values = make([]float64, len(c.Teams))
	present = make([]bool, len(c.Teams))
	for i := range c.Teams {
		values[i] = c.Cells[i][j].Score
		present[i] = c.Cells[i][j].Present
	}
	return values, present
}

// Table renders the chart as Team plus one score column per slot, with
// blanks for missing cells.
func (c Chart) Table() table.Table {
	cols := append([]string{"Team"}, c.Labels()...)
	rows := make([][]string, len(c.Teams))
	for i, team := range c.Teams {
		row := make([]string, 0, len(cols))
		row = append(row, team)
		for _, cell := range c.Cells[i] {
			if cell.Present {
				row = append(row, strconv.FormatFloat(cell.Score, 'f', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		rows[i] = row
	}
	return table.Table{Columns: cols, Rows: rows}
}

type chartCellJSON struct {
	Player string  `json:"player"`
	Score  float64 `json:"score"`
}

type chartRowJSON struct {
	Team  string                    `json:"team"`
	Slots map[string]*chartCellJSON `json:"slots"`
}

// MarshalJSON encodes the chart as rows keyed by slot label; missing cells
// are null.
func (c Chart) MarshalJSON() ([]byte, error) {
	labels := c.Labels()
	rows := make([]chartRowJSON, len(c.Teams))
	for i, team := range c.Teams {
		r := chartRowJSON{Team: team, Slots: make(map[string]*chartCellJSON, len(labels))}
		for j, cell := range c.Cells[i] {
			if cell.Present {
				r.Slots[labels[j]] = &chartCellJSON{Player: cell.Player, Score: cell.Score}
			} else {
				r.Slots[labels[j]] = nil
			}
		}
		rows[i] = r
	}
	return json.Marshal(struct {
		Metric model.Metric   `json:"metric"`
		Slots  []string       `json:"slots"`
		Teams  []chartRowJSON `json:"teams"`
	}{Metric: c.Metric, Slots: labels, Teams: rows})
}
