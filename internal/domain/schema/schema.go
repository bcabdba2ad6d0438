// Package schema maps the raw season table onto semantic column names and
// decodes it into player records.
package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/depthchart/internal/domain/model"
	"github.com/okian/depthchart/internal/domain/table"
)

// Semantic column names.
const (
	PassingTD      = "PassingTD"
	RushingTD      = "RushingTD"
	ReceivingTD    = "ReceivingTD"
	TotalTD        = "TotalTD"
	PassingYD      = "PassingYD"
	RushingYD      = "RushingYD"
	ReceivingYD    = "ReceivingYD"
	TotalYD        = "TotalYD"
	PassingAttempt = "PassingAttempt"
	RushingAttempt = "RushingAttempt"
	Targets        = "Targets"
	Receptions     = "Receptions"
)

// Pass-through columns, kept under their source names.
const (
	ColPlayer            = "Player"
	ColTeam              = "Tm"
	ColPosition          = "FantPos"
	ColAge               = "Age"
	ColGames             = "G"
	ColInterceptions     = "Int"
	ColFumblesLost       = "FL"
	ColYardsPerRush      = "Y/A"
	ColYardsPerReception = "Y/R"
)

// Rename is one source -> semantic column rename.
type Rename struct {
	Source   string
	Semantic string
	// Optional renames are applied when present but not required.
	Optional bool
}

// Mapping is the fixed rename table, in source order.
var Mapping = []Rename{
	{Source: "TD", Semantic: PassingTD},
	{Source: "TD.1", Semantic: RushingTD},
	{Source: "TD.2", Semantic: ReceivingTD},
	{Source: "TD.3", Semantic: TotalTD, Optional: true},
	{Source: "Yds", Semantic: PassingYD},
	{Source: "Yds.1", Semantic: RushingYD},
	{Source: "Yds.2", Semantic: ReceivingYD},
	{Source: "Yds.3", Semantic: TotalYD, Optional: true},
	{Source: "Att", Semantic: PassingAttempt},
	{Source: "Att.1", Semantic: RushingAttempt},
	{Source: "Tgt", Semantic: Targets},
	{Source: "Rec", Semantic: Receptions},
}

// PassThrough lists the required columns that keep their source name.
var PassThrough = []string{
	ColPlayer, ColTeam, ColPosition, ColAge, ColGames,
	ColInterceptions, ColFumblesLost, ColYardsPerRush, ColYardsPerReception,
}

// Dropped lists source columns removed by Map. Absent ones are ignored.
var Dropped = []string{
	"Rk", "2PM", "2PP", "FantPt", "DKPt", "FDPt", "VBD", "PosRank", "OvRank", "PPR", "Fmb", "GS",
}

// Expected returns every source column Map requires.
func Expected() []string {
	out := make([]string, 0, len(Mapping)+len(PassThrough))
	for _, r := range Mapping {
		if !r.Optional {
			out = append(out, r.Source)
		}
	}
	return append(out, PassThrough...)
}

// Map renames source columns to semantic names and drops unused columns.
// It fails with ErrSchema when an expected column is missing or when the
// table already carries a semantic name. The input is not modified.
func Map(t table.Table) (table.Table, error) {
	for _, r := range Mapping {
		if t.Has(r.Semantic) {
			return table.Table{}, fmt.Errorf("%w: column %q already mapped", ErrSchema, r.Semantic)
		}
	}
	for _, name := range Expected() {
		if !t.Has(name) {
			return table.Table{}, fmt.Errorf("%w: missing column %q", ErrSchema, name)
		}
	}

	rename := make(map[string]string, len(Mapping))
	for _, r := range Mapping {
		rename[r.Source] = r.Semantic
	}
	drop := make(map[string]struct{}, len(Dropped))
	for _, d := range Dropped {
		drop[d] = struct{}{}
	}

	keep := make([]int, 0, len(t.Columns))
	cols := make([]string, 0, len(t.Columns))
	for i, c := range t.Columns {
		if _, ok := drop[c]; ok {
			continue
		}
		if s, ok := rename[c]; ok {
			c = s
		}
		keep = append(keep, i)
		cols = append(cols, c)
	}

	rows := make([][]string, len(t.Rows))
	for r := range t.Rows {
		row := make([]string, len(keep))
		for j, i := range keep {
			row[j] = t.Cell(r, i)
		}
		rows[r] = row
	}
	return table.Table{Columns: cols, Rows: rows}, nil
}

// Decode converts a mapped table into records. Blank numeric cells read as
// zero. Count columns must hold whole numbers ("12" or "12.0"); a
// fractional count or anything that does not parse fails with
// ErrInvalidValue.
func Decode(t table.Table) ([]model.PlayerSeasonRecord, error) {
	idx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		idx[c] = i
	}
	for _, name := range decodeColumns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSchema, name)
		}
	}

	out := make([]model.PlayerSeasonRecord, 0, len(t.Rows))
	for r := range t.Rows {
		d := rowDecoder{t: t, idx: idx, row: r}
		rec := model.PlayerSeasonRecord{
			Player:   CleanName(d.str(ColPlayer)),
			Team:     strings.TrimSpace(d.str(ColTeam)),
			Position: strings.TrimSpace(d.str(ColPosition)),
			Age:      d.int(ColAge),
			Games:    d.int(ColGames),
			Stats: model.Stats{
				PassingYD:         d.int(PassingYD),
				PassingAttempt:    d.int(PassingAttempt),
				PassingTD:         d.int(PassingTD),
				Interceptions:     d.int(ColInterceptions),
				RushingYD:         d.int(RushingYD),
				RushingAttempt:    d.int(RushingAttempt),
				YardsPerRush:      d.float(ColYardsPerRush),
				RushingTD:         d.int(RushingTD),
				ReceivingYD:       d.int(ReceivingYD),
				Targets:           d.int(Targets),
				Receptions:        d.int(Receptions),
				YardsPerReception: d.float(ColYardsPerReception),
				ReceivingTD:       d.int(ReceivingTD),
				FumblesLost:       d.int(ColFumblesLost),
			},
		}
		if d.err != nil {
			return nil, d.err
		}
		out = append(out, rec)
	}
	return out, nil
}

// CleanName strips the award markers the source appends to names:
// everything from the first '*', then everything from the first '\'.
func CleanName(s string) string {
	if i := strings.IndexByte(s, '*'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '\\'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

var decodeColumns = []string{
	ColPlayer, ColTeam, ColPosition, ColAge, ColGames,
	PassingYD, PassingAttempt, PassingTD, ColInterceptions,
	RushingYD, RushingAttempt, ColYardsPerRush, RushingTD,
	ReceivingYD, Targets, Receptions, ColYardsPerReception, ReceivingTD,
	ColFumblesLost,
}

// rowDecoder keeps the first parse error so Decode can build a record in
// one expression.
type rowDecoder struct {
	t   table.Table
	idx map[string]int
	row int
	err error
}

func (d *rowDecoder) str(col string) string {
	return d.t.Cell(d.row, d.idx[col])
}

func (d *rowDecoder) float(col string) float64 {
	s := strings.TrimSpace(d.str(col))
	if s == "" || d.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		d.err = fmt.Errorf("%w: row %d column %q: %q", ErrInvalidValue, d.row+1, col, s)
		return 0
	}
	return v
}

func (d *rowDecoder) int(col string) int {
	v := d.float(col)
	if v != math.Trunc(v) && d.err == nil {
		d.err = fmt.Errorf("%w: row %d column %q: %q is not a whole number",
			ErrInvalidValue, d.row+1, col, strings.TrimSpace(d.str(col)))
		return 0
	}
	return int(v)
}
